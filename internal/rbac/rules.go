package rbac

// Default policy for the two account roles.
var RolePermissions = map[string][]string{
	"student": {
		"quiz:view",
		"submission:create",
		"submission:view-own",
	},
	"instructor": {
		"quiz:create",
		"quiz:view",
		"quiz:delete-own",
		"submission:view-for-own-quizzes",
		"submission:grade",
	},
}
