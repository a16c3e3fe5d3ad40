package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/ehimebase/babybase/internal/app/models"
	appRepos "github.com/ehimebase/babybase/internal/app/repositories"
	"github.com/ehimebase/babybase/internal/pkg/auth"
)

// Admin is the system administrator account created on first start
type Admin struct {
	Email    string
	Password string
}

type sampleLesson struct {
	title    string
	content  string
	duration int
}

type sampleCurriculum struct {
	title   string
	lessons []sampleLesson
}

type sampleCourse struct {
	title       string
	description string
	curriculums []sampleCurriculum
}

var sampleCourses = []sampleCourse{
	{
		title:       "愛媛で働くはじめの一歩",
		description: "地域企業で働く前に知っておきたい基礎知識",
		curriculums: []sampleCurriculum{
			{title: "愛媛の産業を知る", lessons: []sampleLesson{
				{"愛媛の主要産業", "造船、柑橘、タオルなど地域を支える産業の概要", 10},
				{"中小企業で働くということ", "裁量の大きさと一人ひとりの役割", 8},
			}},
			{title: "社会人の基本", lessons: []sampleLesson{
				{"報告・連絡・相談", "チームで仕事を進めるための基本", 7},
				{"ビジネスメールの書き方", "件名、宛名、結びの型", 9},
			}},
		},
	},
	{
		title:       "チャレンジする力",
		description: "小さな挑戦を積み重ねるための考え方",
		curriculums: []sampleCurriculum{
			{title: "挑戦の設計", lessons: []sampleLesson{
				{"目標を小さく分ける", "達成可能な単位に分解する練習", 6},
				{"失敗から学ぶ振り返り", "KPTで次の行動を決める", 8},
			}},
		},
	},
	{
		title:       "チームで成果を出す",
		description: "協働とコミュニケーションの実践",
		curriculums: []sampleCurriculum{
			{title: "協働の基本", lessons: []sampleLesson{
				{"傾聴のスキル", "相手の意図を確かめる聞き方", 7},
				{"役割分担と合意形成", "決め方を先に決める", 9},
			}},
		},
	},
	{
		title:       "地域とつながる仕事",
		description: "地域課題とビジネスの関係を学ぶ",
		curriculums: []sampleCurriculum{
			{title: "地域課題を知る", lessons: []sampleLesson{
				{"人口減少と地域経済", "担い手不足が企業にもたらす変化", 10},
				{"クエストで地域に関わる", "短期の仕事から始める関わり方", 6},
			}},
		},
	},
}

// CreateDefaultData creates the system admin and the sample courses if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, admin Admin, lgr zerolog.Logger) error {
	profileRepo := appRepos.NewProfileRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin, courses)...")
	var finalErr error // collect errors without stopping

	// --- System admin --- //
	switch {
	case admin.Email == "" || admin.Password == "":
		lgr.Warn().Msg("Seed admin credentials not configured, skipping admin creation")
	default:
		_, err := profileRepo.GetByEmail(ctx, admin.Email)
		switch {
		case err == nil:
			lgr.Info().Msg("Admin user already exists, skipping creation")
		case errors.Is(err, appRepos.ErrNotFound):
			hash, err := auth.HashPassword(admin.Password)
			if err != nil {
				lgr.Error().Err(err).Msg("Error hashing admin password")
				finalErr = errors.Join(finalErr, err)
				break
			}
			p := &appModels.Profile{
				Email:        admin.Email,
				PasswordHash: hash,
				FullName:     "System Administrator",
				Role:         appModels.RoleSystemAdmin,
			}
			if err := profileRepo.Create(ctx, p); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
				break
			}
			lgr.Info().Str("adminID", p.ID.String()).Msg("Default admin user created successfully")
		default:
			lgr.Error().Err(err).Msg("Error checking if admin user exists")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Sample courses --- //
	n, err := courseRepo.CountCourses(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting courses")
		return errors.Join(finalErr, err)
	}
	if n > 0 {
		lgr.Info().Int64("courses", n).Msg("Courses already exist, skipping sample courses")
		return finalErr
	}

	for i, sc := range sampleCourses {
		if err := createCourse(ctx, courseRepo, sc, i); err != nil {
			lgr.Error().Err(err).Str("course", sc.title).Msg("Error creating sample course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func createCourse(ctx context.Context, repo *appRepos.CourseRepository, sc sampleCourse, order int) error {
	description := sc.description
	course := &appModels.Course{Title: sc.title, Description: &description, SortOrder: order}
	if err := repo.CreateCourse(ctx, course); err != nil {
		return err
	}

	for ci, scur := range sc.curriculums {
		cur := &appModels.Curriculum{CourseID: course.ID, Title: scur.title, SortOrder: ci}
		if err := repo.CreateCurriculum(ctx, cur); err != nil {
			return err
		}
		for li, sl := range scur.lessons {
			content := sl.content
			lesson := &appModels.Lesson{
				CurriculumID:    cur.ID,
				Title:           sl.title,
				Content:         &content,
				DurationMinutes: sl.duration,
				SortOrder:       li,
			}
			if err := repo.CreateLesson(ctx, lesson); err != nil {
				return err
			}
		}
	}
	return nil
}
