package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey        string   `json:"token_sign_key"`
		TokenIssuer         string   `json:"token_issuer"`
		TokenDuration       Duration `json:"token_duration"`
		ResetTokenDuration  Duration `json:"reset_token_duration"`
		PasswordMinLength   int      `json:"password_min_length"`
		PasswordComplexity  bool     `json:"password_complexity"`
		BootstrapAdminEmail string   `json:"bootstrap_admin_email"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Production     bool     `json:"production"`
	} `json:"server,omitempty"`

	SMTP struct {
		Host string `json:"host"`
		Port int    `json:"port"`
		User string `json:"user"`
		Pass string `json:"pass"`
		From string `json:"from"`
	} `json:"smtp,omitempty"`

	Workers struct {
		ResetCleanupInterval Duration `json:"reset_cleanup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			TokenSignKey:        jsonCfg.Auth.TokenSignKey,
			TokenIssuer:         jsonCfg.Auth.TokenIssuer,
			TokenDuration:       time.Duration(jsonCfg.Auth.TokenDuration),
			ResetTokenDuration:  time.Duration(jsonCfg.Auth.ResetTokenDuration),
			PasswordMinLength:   jsonCfg.Auth.PasswordMinLength,
			PasswordComplexity:  jsonCfg.Auth.PasswordComplexity,
			BootstrapAdminEmail: jsonCfg.Auth.BootstrapAdminEmail,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			Production:     jsonCfg.Server.Production,
		},
		SMTP: SMTP{
			Host: jsonCfg.SMTP.Host,
			Port: jsonCfg.SMTP.Port,
			User: jsonCfg.SMTP.User,
			Pass: jsonCfg.SMTP.Pass,
			From: jsonCfg.SMTP.From,
		},
		Workers: Workers{
			ResetCleanupInterval: time.Duration(jsonCfg.Workers.ResetCleanupInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
