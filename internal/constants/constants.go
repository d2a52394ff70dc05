package constants

const (
	AppCartService    = "cart-service"
	AppProductService = "product-service"
	AppUserService    = "user-service"
	AppMigration      = "migration"
	AppMain           = "main grocery"
	AudienceUser      = "audience-user"
)
