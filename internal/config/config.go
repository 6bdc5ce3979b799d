package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	ProviderS3         = "s3"
	ProviderCloudinary = "cloudinary"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr        string
		Environment string
		FrontendURL string
		ClientDir   string
	}
	Database struct {
		Driver        string
		Path          string
		MongoURI      string
		MongoDatabase string
	}
	Auth struct {
		JWTSecret     string
		BcryptCost    int
		TokenTTLHours int
	}
	Assets struct {
		Provider        string
		Bucket          string
		KeyPrefix       string
		Region          string
		Endpoint        string
		PublicBaseURL   string
		AccessKeyID     string
		SecretAccessKey string
		CloudinaryURL   string
		CloudName       string
		APIKey          string
		APISecret       string
		Folder          string
	}
	AWS struct {
		Profile string
	}
	Log struct {
		Level  string
		Format string
	}
}

// legacyEnv maps config keys to the variable names used by existing deployments.
var legacyEnv = map[string]string{
	"auth.jwtsecret":       "JWT_SECRET_KEY",
	"server.frontendurl":   "FRONTEND_URL",
	"server.environment":   "NODE_ENV",
	"database.mongouri":    "MONGODB_CONNECTION_STRING",
	"assets.cloudinaryurl": "CLOUDINARY_URL",
	"assets.cloudname":     "CLOUDINARY_CLOUD_NAME",
	"assets.apikey":        "CLOUDINARY_API_KEY",
	"assets.apisecret":     "CLOUDINARY_API_SECRET",
}

// Load reads configuration from environment variables and optional config files.
// Variables from a local .env file fill in whatever the environment leaves unset.
func Load() (Config, error) {
	_ = godotenv.Load() // optional file

	v := viper.New()
	v.SetEnvPrefix("HOTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:7000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.frontendurl", "http://localhost:5173")
	v.SetDefault("server.clientdir", "../frontend/dist")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/hotels.db")
	v.SetDefault("database.mongouri", "")
	v.SetDefault("database.mongodatabase", "hotel-booking")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.bcryptcost", 8)
	v.SetDefault("auth.tokenttlhours", 24)
	v.SetDefault("assets.provider", ProviderS3)
	v.SetDefault("assets.bucket", "")
	v.SetDefault("assets.keyprefix", "hotels")
	v.SetDefault("assets.region", "us-east-1")
	v.SetDefault("assets.endpoint", "")
	v.SetDefault("assets.publicbaseurl", "")
	v.SetDefault("assets.accesskeyid", "")
	v.SetDefault("assets.secretaccesskey", "")
	v.SetDefault("assets.cloudinaryurl", "")
	v.SetDefault("assets.cloudname", "")
	v.SetDefault("assets.apikey", "")
	v.SetDefault("assets.apisecret", "")
	v.SetDefault("assets.folder", "hotels")
	v.SetDefault("aws.profile", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for key, legacy := range legacyEnv {
		prefixed := "HOTEL_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.FrontendURL = strings.TrimRight(cfg.Server.FrontendURL, "/")
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Assets.Provider = strings.ToLower(strings.TrimSpace(cfg.Assets.Provider))

	return cfg, nil
}

// Validate reports every setting the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("auth jwt secret is required"))
	}
	if c.Auth.TokenTTLHours <= 0 {
		errs = append(errs, errors.New("auth token ttl must be positive"))
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database path is required"))
		}
	case DriverMongo:
		if c.Database.MongoURI == "" {
			errs = append(errs, errors.New("database mongo uri is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}

	switch c.Assets.Provider {
	case ProviderS3:
		if c.Assets.Bucket == "" {
			errs = append(errs, errors.New("assets bucket is required"))
		}
	case ProviderCloudinary:
		if c.CloudinaryURL() == "" {
			errs = append(errs, errors.New("cloudinary url or credentials are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown assets provider %q", c.Assets.Provider))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether session cookies must be marked Secure.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// CloudinaryURL returns the configured URL, or one assembled from the
// separate cloud name and key settings.
func (c Config) CloudinaryURL() string {
	if c.Assets.CloudinaryURL != "" {
		return c.Assets.CloudinaryURL
	}
	a := c.Assets
	if a.CloudName == "" || a.APIKey == "" || a.APISecret == "" {
		return ""
	}
	u := url.URL{
		Scheme: "cloudinary",
		User:   url.UserPassword(a.APIKey, a.APISecret),
		Host:   a.CloudName,
	}
	return u.String()
}
