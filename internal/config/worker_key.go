package config

type WorkerKeyStruct struct {
	RefreshAnalysisQueue string
}

var WorkerKey = &WorkerKeyStruct{
	RefreshAnalysisQueue: "refresh_analysis_queue",
}
