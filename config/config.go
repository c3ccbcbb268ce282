package config

import (
	"os"
	"path"
	"strconv"

	"gopkg.in/yaml.v2"
)

// DBConfig database configuration
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

// SmtpConfig outbound mail transport configuration
type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	FromName string `yaml:"from_name" json:"from_name"`
}

// ReportConfig order report delivery configuration.
// Recipient falls back to Smtp.Username when empty.
type ReportConfig struct {
	Recipient string `yaml:"recipient" json:"recipient"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Smtp     SmtpConfig   `yaml:"smtp" json:"smtp"`
	Report   ReportConfig `yaml:"report" json:"report"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "OrdersFGV",
		Location: "America/Sao_Paulo",
		Workdir:  "/var/ecommerce-fgv",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   3001,
		Secret: "9b6de5cc-0001-1203-xxtt-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "ecommerce_fgv",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Smtp: SmtpConfig{
		Host:     "smtp.gmail.com",
		Port:     587,
		FromName: "Internal Orders",
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "ecommerce-fgv.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := strconv.Atoi(evalue)
	if err == nil {
		f(p)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

// LoadConfig loads the yaml configuration file when it exists and applies
// environment variable overrides on top of it.
func LoadConfig(cfile string) *AppConfig {
	appconfig := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			appconfig = new(AppConfig)
			if err := yaml.Unmarshal(data, appconfig); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("ECOMMERCE_SYSTEM_WORKDIR", func(v string) { appconfig.System.Workdir = v })
	setEnvValue("ECOMMERCE_SYSTEM_LOCATION", func(v string) { appconfig.System.Location = v })
	setEnvBoolValue("ECOMMERCE_SYSTEM_DEBUG", func(v bool) { appconfig.System.Debug = v })

	setEnvValue("ECOMMERCE_WEB_HOST", func(v string) { appconfig.Web.Host = v })
	setEnvIntValue("ECOMMERCE_WEB_PORT", func(v int) { appconfig.Web.Port = v })
	setEnvValue("ECOMMERCE_WEB_SECRET", func(v string) { appconfig.Web.Secret = v })

	setEnvValue("ECOMMERCE_DB_TYPE", func(v string) { appconfig.Database.Type = v })
	setEnvValue("ECOMMERCE_DB_HOST", func(v string) { appconfig.Database.Host = v })
	setEnvIntValue("ECOMMERCE_DB_PORT", func(v int) { appconfig.Database.Port = v })
	setEnvValue("ECOMMERCE_DB_NAME", func(v string) { appconfig.Database.Name = v })
	setEnvValue("ECOMMERCE_DB_USER", func(v string) { appconfig.Database.User = v })
	setEnvValue("ECOMMERCE_DB_PWD", func(v string) { appconfig.Database.Passwd = v })
	setEnvBoolValue("ECOMMERCE_DB_DEBUG", func(v bool) { appconfig.Database.Debug = v })

	setEnvValue("ECOMMERCE_SMTP_HOST", func(v string) { appconfig.Smtp.Host = v })
	setEnvIntValue("ECOMMERCE_SMTP_PORT", func(v int) { appconfig.Smtp.Port = v })
	setEnvValue("ECOMMERCE_SMTP_USER", func(v string) { appconfig.Smtp.Username = v })
	setEnvValue("ECOMMERCE_SMTP_PWD", func(v string) { appconfig.Smtp.Password = v })
	setEnvValue("ECOMMERCE_SMTP_FROM", func(v string) { appconfig.Smtp.From = v })

	setEnvValue("ECOMMERCE_REPORT_EMAIL", func(v string) { appconfig.Report.Recipient = v })

	return appconfig
}
