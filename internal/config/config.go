package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	NATS     NATSConfig
	Upload   UploadConfig
	Globus   GlobusConfig
	Auth     AuthConfig
	SubsAPI  SubsAPIConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

type NATSConfig struct {
	URL        string `envconfig:"NATS_URL" required:"true"`
	ClientName string `envconfig:"NATS_CLIENT_NAME" default:"file-upload-service"`
	StreamName string `envconfig:"NATS_STREAM_NAME" default:"SUBMISSIONS"`
	QueueGroup string `envconfig:"NATS_QUEUE_GROUP" default:"file-upload"`

	// Outbound subjects.
	ChecksumGenerationSubject    string `envconfig:"NATS_CHECKSUM_GENERATION_SUBJECT" default:"file.checksum.generation"`
	ContentValidationSubject     string `envconfig:"NATS_CONTENT_VALIDATION_SUBJECT" default:"file.content.validation"`
	FileDeletedValidationSubject string `envconfig:"NATS_FILE_DELETED_VALIDATION_SUBJECT" default:"file.deleted.validation"`

	// Inbound globus subjects.
	ShareRequestSubject        string `envconfig:"NATS_SHARE_REQUEST_SUBJECT" default:"globus.share.request"`
	UploadedFilesSubject       string `envconfig:"NATS_UPLOADED_FILES_SUBJECT" default:"globus.uploaded.files"`
	SubmissionSubmittedSubject string `envconfig:"NATS_SUBMISSION_SUBMITTED_SUBJECT" default:"usi.submission.submitted"`

	UploadedFilesConsumerName string `envconfig:"NATS_UPLOADED_FILES_CONSUMER" default:"fu-globus-uploaded-files"`
	UnregisterConsumerName    string `envconfig:"NATS_UNREGISTER_CONSUMER" default:"fu-globus-sub-unregister"`
}

type UploadConfig struct {
	// SourceBasePath is the flat staging directory the tusd server writes into.
	SourceBasePath string `envconfig:"UPLOAD_SOURCE_BASE_PATH" required:"true"`
	// TargetBasePath is the archive subtree, relative to SourceBasePath so
	// relocation stays an atomic same-filesystem rename.
	TargetBasePath string `envconfig:"UPLOAD_TARGET_BASE_PATH" default:"archive"`
}

type GlobusConfig struct {
	AuthURL              string `envconfig:"GLOBUS_AUTH_URL" default:"https://auth.globus.org"`
	TransferURL          string `envconfig:"GLOBUS_TRANSFER_URL" default:"https://transfer.api.globus.org"`
	ClientID             string `envconfig:"GLOBUS_CLIENT_ID" required:"true"`
	ClientSecret         string `envconfig:"GLOBUS_CLIENT_SECRET" required:"true"`
	TransferRefreshToken string `envconfig:"GLOBUS_TRANSFER_REFRESH_TOKEN" required:"true"`
	HostEndpointID       string `envconfig:"GLOBUS_HOST_ENDPOINT_ID" required:"true"`
	HostEndpointBaseDir  string `envconfig:"GLOBUS_HOST_ENDPOINT_BASE_DIR" required:"true"`
	// BaseUploadDir is where the host endpoint materializes uploads, one
	// subdirectory per owner.
	BaseUploadDir  string        `envconfig:"GLOBUS_BASE_UPLOAD_DIR" required:"true"`
	ShareURLFormat string        `envconfig:"GLOBUS_SHARE_URL_FORMAT" default:"https://app.globus.org/file-manager?origin_id=%s"`
	RequestTimeout time.Duration `envconfig:"GLOBUS_REQUEST_TIMEOUT" default:"30s"`

	// Wait bound while another request is provisioning the owner's share.
	SharePollInterval time.Duration `envconfig:"GLOBUS_SHARE_POLL_INTERVAL" default:"1s"`
	SharePollAttempts int           `envconfig:"GLOBUS_SHARE_POLL_ATTEMPTS" default:"30"`
}

type AuthConfig struct {
	// PublicKeyPath points at the PEM encoded RSA public key of the token issuer.
	PublicKeyPath string `envconfig:"AUTH_PUBLIC_KEY_PATH" required:"true"`
}

type SubsAPIConfig struct {
	Host string `envconfig:"SUBS_API_HOST" required:"true"`
	// URI templates receive host and submission id, in that order.
	StatusURIFormat     string        `envconfig:"SUBS_API_STATUS_URI_FORMAT" default:"%s/api/submissions/%s/submissionStatus"`
	SubmissionURIFormat string        `envconfig:"SUBS_API_SUBMISSION_URI_FORMAT" default:"%s/api/submissions/%s"`
	RequestTimeout      time.Duration `envconfig:"SUBS_API_REQUEST_TIMEOUT" default:"30s"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
