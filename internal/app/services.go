package app

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/keyxmakerx/examboard/internal/plugins/answersheets"
	"github.com/keyxmakerx/examboard/internal/plugins/audit"
	"github.com/keyxmakerx/examboard/internal/plugins/auth"
	"github.com/keyxmakerx/examboard/internal/plugins/examiners"
	"github.com/keyxmakerx/examboard/internal/plugins/invigilation"
	"github.com/keyxmakerx/examboard/internal/plugins/schools"
	"github.com/keyxmakerx/examboard/internal/plugins/stats"
	"github.com/keyxmakerx/examboard/internal/plugins/students"
	"github.com/keyxmakerx/examboard/internal/plugins/subjects"
)

// Services bundles the plugin services the route tables are built from.
// main.go uses DefaultServices; tests substitute in-memory implementations.
type Services struct {
	Auth         auth.AuthService
	Audit        audit.AuditService
	Schools      schools.SchoolService
	Subjects     subjects.SubjectService
	Examiners    examiners.ExaminerService
	Students     students.StudentService
	AnswerSheets answersheets.AnswerSheetService
	Invigilation invigilation.InvigilationService
	Stats        stats.StatsService
}

// DefaultServices wires every plugin to the MariaDB pool and Redis client.
// Plugin wiring order: audit first, since auth, answer sheets and
// invigilation record into it.
func (a *App) DefaultServices() Services {
	auditSvc := audit.NewAuditService(audit.NewAuditRepository(a.DB))

	authSvc := auth.NewAuthService(
		auth.NewUserRepository(a.DB),
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		a.Tokens,
		auth.NewRedisSessionStore(a.Redis, a.Config.Auth.TokenTTL),
		auth.WithAuditService(auditSvc),
		auth.WithLoginCounter(auth.NewLoginCounter(a.Registry)),
	)

	validator := invigilation.NewValidator(invigilation.NewReferenceLookup(a.DB))

	return Services{
		Auth:         authSvc,
		Audit:        auditSvc,
		Schools:      schools.NewSchoolService(schools.NewSchoolRepository(a.DB)),
		Subjects:     subjects.NewSubjectService(subjects.NewSubjectRepository(a.DB)),
		Examiners:    examiners.NewExaminerService(examiners.NewExaminerRepository(a.DB)),
		Students:     students.NewStudentService(students.NewStudentRepository(a.DB)),
		AnswerSheets: answersheets.NewAnswerSheetService(answersheets.NewAnswerSheetRepository(a.DB), auditSvc),
		Invigilation: invigilation.NewInvigilationService(invigilation.NewAssignmentRepository(a.DB), validator, auditSvc),
		Stats:        stats.NewStatsService(stats.NewStatsRepository(a.DB)),
	}
}
