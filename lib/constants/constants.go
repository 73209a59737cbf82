package constants

const (
	SSM_PATH = "/timebank"

	ALLOWED_ORIGINS = "/timebank/ALLOWED_ORIGINS"

	SEVERA_BASE_URL      = "/timebank/SEVERA_BASE_URL"
	SEVERA_CLIENT_ID     = "/timebank/SEVERA_CLIENT_ID"
	SEVERA_CLIENT_SECRET = "/timebank/SEVERA_CLIENT_SECRET"
	SEVERA_SCOPE         = "projects:read, resourceallocations:read, hours:read, users:read"

	KEYCLOAK_BASE_URL      = "/timebank/KEYCLOAK_BASE_URL"
	KEYCLOAK_REALM         = "/timebank/KEYCLOAK_REALM"
	KEYCLOAK_CLIENT_ID     = "/timebank/KEYCLOAK_CLIENT_ID"
	KEYCLOAK_CLIENT_SECRET = "/timebank/KEYCLOAK_CLIENT_SECRET"

	FORECAST_BASE_URL = "/timebank/FORECAST_BASE_URL"
	FORECAST_API_KEY  = "/timebank/FORECAST_API_KEY"

	GOOGLE_DRIVE_CREDENTIALS    = "/timebank/GOOGLE_DRIVE_CREDENTIALS"
	GOOGLE_DRIVE_BASE_FOLDER_ID = "/timebank/GOOGLE_DRIVE_BASE_FOLDER_ID"
	GOOGLE_DRIVE_PDF_FOLDER_ID  = "/timebank/GOOGLE_DRIVE_PDF_FOLDER_ID"
	MEMO_ARCHIVE_BUCKET         = "/timebank/MEMO_ARCHIVE_BUCKET"

	DATABASE_RDS_PROXY_URL = "/timebank/DATABASE_RDS_PROXY_URL"
	DATABASE_RDS_ENDPOINT  = "/timebank/DATABASE_RDS_ENDPOINT"
	DATABASE_PORT          = "/timebank/DATABASE_PORT"
	DATABASE_NAME          = "/timebank/DATABASE_NAME"
	DATABASE_USERNAME      = "/timebank/DATABASE_USERNAME"
	DATABASE_PASSWORD      = "/timebank/DATABASE_PASSWORD"
	SSL_MODE               = "/timebank/SSL_MODE"
	DRIVER_NAME            = "postgres"

	DATE_LAYOUT = "2006-01-02"
)
