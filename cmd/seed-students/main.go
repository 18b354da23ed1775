package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/database"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/scoring"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

var names = []string{
	"Ahmet Yılmaz", "Ayşe Kaya", "Mehmet Demir", "Zeynep Şahin", "Mustafa Çelik",
	"Elif Yıldız", "Emre Aydın", "Merve Öztürk", "Burak Arslan", "Selin Doğan",
	"Can Kılıç", "Ece Aslan", "Mert Çetin", "İrem Kara", "Kerem Koç",
	"Defne Kurt", "Ali Özdemir", "Nehir Şimşek", "Yusuf Polat", "Ceren Erdoğan",
	"Eren Güneş", "Buse Aksoy", "Oğuz Tekin", "Sude Yavuz", "Kaan Uçar",
	"Melis Bozkurt", "Arda Keskin", "Duru Avcı", "Berk Özkan", "Asya Ünal",
}

func main() {
	teacherEmail := flag.String("teacher", "", "Email of the teacher who owns the class (required)")
	grade := flag.Int("grade", 12, "Grade level of the class")
	section := flag.String("section", "A", "Class section")
	count := flag.Int("count", 30, "Number of students to create")
	password := flag.String("password", "sinavkoc123", "Password for every seeded student")
	pin := flag.String("pin", "123456", "Parent PIN for every seeded student")
	exams := flag.Int("exams", 5, "Demo TYT results per student (0 to skip)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if *teacherEmail == "" {
		log.Fatal().Msg("-teacher is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	authService := service.NewAuthService(cfg, rdb)
	classService := service.NewClassService(repository.NewClassRepository(pool))
	studentService := service.NewStudentService(repository.NewStudentRepository(pool), classService, authService, log)
	examService := service.NewExamResultService(repository.NewExamResultRepository(pool), rdb, log)

	teacher, err := repository.NewTeacherRepository(pool).GetByEmail(ctx, *teacherEmail)
	if err != nil {
		log.Fatal().Err(err).Str("email", *teacherEmail).Msg("Teacher not found")
	}
	v := service.Viewer{Kind: service.TokenTypeTeacher, UserID: teacher.ID, Permissions: teacher.Role.Permissions()}

	*section = strings.ToUpper(strings.TrimSpace(*section))
	classID, err := findOrCreateClass(ctx, classService, v, *grade, *section)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare class")
	}

	fmt.Printf("=== Seeding %d students into class %d-%s ===\n", *count, *grade, *section)

	rng := rand.New(rand.NewPCG(uint64(classID), 2026))
	created := 0
	for i := 0; i < *count; i++ {
		number := fmt.Sprintf("%d%s%03d", *grade, *section, i+1)
		student, err := studentService.Create(ctx, v, model.CreateStudentRequest{
			StudentNumber: number,
			Name:          names[i%len(names)],
			ClassID:       classID,
			TargetExam:    string(scoring.ExamTypeTYT),
			Password:      *password,
			ParentPIN:     *pin,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			fmt.Printf("Skipping %s: already exists\n", number)
			continue
		}
		if err != nil {
			fmt.Printf("Error creating student %s: %v\n", number, err)
			continue
		}
		created++

		for e := 0; e < *exams; e++ {
			req := demoExam(rng, e, *exams)
			if _, err := examService.Create(ctx, student.ID, req); err != nil {
				fmt.Printf("Error adding exam for %s: %v\n", number, err)
			}
		}
		if created%10 == 0 {
			fmt.Printf("Created %d students...\n", created)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", created, *count)
}

func findOrCreateClass(ctx context.Context, classes *service.ClassService, v service.Viewer, grade int, section string) (int, error) {
	existing, err := classes.List(ctx, v)
	if err != nil {
		return 0, err
	}
	for _, c := range existing {
		if c.GradeLevel == grade && c.Section == section && c.TeacherID == v.UserID {
			fmt.Printf("Found existing class with ID: %d\n", c.ID)
			return c.ID, nil
		}
	}

	class, err := classes.Create(ctx, v, model.ClassRequest{
		Name:       fmt.Sprintf("%d-%s", grade, section),
		GradeLevel: grade,
		Section:    section,
	})
	if err != nil {
		return 0, err
	}
	fmt.Printf("Created class with ID: %d\n", class.ID)
	return class.ID, nil
}

// demoExam builds a TYT deneme dated weekly towards today with slowly
// improving counts, so seeded students show a trend.
func demoExam(rng *rand.Rand, index, total int) model.ExamResultRequest {
	answers := model.FormAnswers{}
	for _, s := range scoring.SubjectsOf(scoring.ExamTypeTYT) {
		limit := scoring.QuestionCap(s)
		correct := min(limit, limit/2+index+rng.IntN(limit/4+1))
		wrong := rng.IntN(limit - correct + 1)
		answers[s.Key(scoring.FieldCorrect)] = strconv.Itoa(correct)
		answers[s.Key(scoring.FieldWrong)] = strconv.Itoa(wrong)
	}

	date := time.Now().AddDate(0, 0, -7*(total-index))
	return model.ExamResultRequest{
		ExamType: string(scoring.ExamTypeTYT),
		ExamName: fmt.Sprintf("TYT Deneme %d", index+1),
		ExamDate: date.Format(model.DateLayout),
		Answers:  answers,
	}
}
