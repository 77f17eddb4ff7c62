package app

import (
	"github.com/keyxmakerx/examboard/internal/plugins/answersheets"
	"github.com/keyxmakerx/examboard/internal/plugins/audit"
	"github.com/keyxmakerx/examboard/internal/plugins/auth"
	"github.com/keyxmakerx/examboard/internal/plugins/examiners"
	"github.com/keyxmakerx/examboard/internal/plugins/invigilation"
	"github.com/keyxmakerx/examboard/internal/plugins/schools"
	"github.com/keyxmakerx/examboard/internal/plugins/stats"
	"github.com/keyxmakerx/examboard/internal/plugins/students"
	"github.com/keyxmakerx/examboard/internal/plugins/subjects"
	"github.com/keyxmakerx/examboard/internal/routing"
)

// policyTable is the single source of truth for who may do what. Each
// operation lists its roles explicitly; admin is not implied anywhere.
func policyTable() map[routing.Operation]auth.RoleSet {
	adminOnly := auth.Roles(auth.RoleAdmin)
	staff := auth.Roles(auth.RoleAdmin, auth.RoleCoordinator)
	everyone := auth.Roles(auth.RoleAdmin, auth.RoleCoordinator, auth.RoleExaminer)

	return map[routing.Operation]auth.RoleSet{
		auth.OpUsersList:      adminOnly,
		auth.OpUsersProvision: adminOnly,
		auth.OpUsersStatus:    adminOnly,

		schools.OpCreate: staff,
		schools.OpUpdate: staff,
		schools.OpDelete: adminOnly,

		subjects.OpCreate: staff,

		examiners.OpCreate: staff,
		examiners.OpUpdate: staff,
		examiners.OpDelete: adminOnly,

		students.OpList:   staff,
		students.OpCreate: staff,

		answersheets.OpList:     everyone,
		answersheets.OpCreate:   staff,
		answersheets.OpEvaluate: everyone,

		invigilation.OpListMine: auth.Roles(auth.RoleExaminer),
		invigilation.OpCreate:   staff,
		invigilation.OpUpdate:   staff,
		invigilation.OpDelete:   staff,

		stats.OpView: staff,
		audit.OpList: adminOnly,
	}
}
