package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"golang.org/x/crypto/bcrypt"

	auth "github.com/goliatone/go-auth-api"
)

type Server struct {
	Address string `yaml:"address" json:"address"`
	Debug   bool   `yaml:"debug" json:"debug"`
}

type Database struct {
	Driver string `yaml:"driver" json:"driver"`
	DSN    string `yaml:"dsn" json:"-"`
}

type Auth struct {
	SigningKey       string        `yaml:"signing_key" json:"-"`
	TokenExpiration  time.Duration `yaml:"token_expiration" json:"token_expiration"`
	PasswordCost     int           `yaml:"password_cost" json:"password_cost"`
	DeterministicIDs bool          `yaml:"deterministic_ids" json:"deterministic_ids"`
}

type Company struct {
	PhoneRegion string `yaml:"phone_region" json:"phone_region"`
}

// Config is the immutable process configuration
type Config struct {
	Server   Server   `yaml:"server" json:"server"`
	Database Database `yaml:"database" json:"database"`
	Auth     Auth     `yaml:"auth" json:"auth"`
	Company  Company  `yaml:"company" json:"company"`
}

var _ auth.Config = Config{}

// Defaults returns the configuration used before any source is applied
func Defaults() Config {
	return Config{
		Server: Server{
			Address: ":3000",
		},
		Database: Database{
			Driver: "sqlite",
			DSN:    "file:app.db?cache=shared",
		},
		Auth: Auth{
			TokenExpiration: auth.DefaultTokenExpiration,
			PasswordCost:    auth.DefaultPasswordCost,
		},
		Company: Company{
			PhoneRegion: "ES",
		},
	}
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Server),
		validation.Field(&c.Database),
		validation.Field(&c.Auth),
		validation.Field(&c.Company),
	)
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Address, validation.Required),
	)
}

func (d Database) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Driver, validation.Required, validation.In("sqlite", "postgres")),
		validation.Field(&d.DSN, validation.Required),
	)
}

func (a Auth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.SigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&a.TokenExpiration, validation.Required, validation.Min(time.Second)),
		validation.Field(&a.PasswordCost, validation.Required, validation.Min(bcrypt.MinCost), validation.Max(bcrypt.MaxCost)),
	)
}

func (c Company) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PhoneRegion, validation.Required, validation.Length(2, 2)),
	)
}

func (c Config) GetSigningKey() string {
	return c.Auth.SigningKey
}

func (c Config) GetTokenExpiration() time.Duration {
	return c.Auth.TokenExpiration
}

func (c Config) GetPasswordCost() int {
	return c.Auth.PasswordCost
}

func (c Config) GetDeterministicIDs() bool {
	return c.Auth.DeterministicIDs
}

func (c Config) GetServerAddress() string {
	return c.Server.Address
}

func (c Config) GetDebug() bool {
	return c.Server.Debug
}

func (c Config) GetDatabaseDriver() string {
	return c.Database.Driver
}

func (c Config) GetDatabaseDSN() string {
	return c.Database.DSN
}

func (c Config) GetPhoneRegion() string {
	return c.Company.PhoneRegion
}
