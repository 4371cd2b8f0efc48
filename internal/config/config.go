package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	DatabaseDSN    string `mapstructure:"DATABASE_DSN"`

	Backend       string `mapstructure:"BACKEND"`
	RESTEndpoint  string `mapstructure:"REST_ENDPOINT"`
	SheetEndpoint string `mapstructure:"SHEET_ENDPOINT"`
	SheetToken    string `mapstructure:"SHEET_TOKEN"`
	MirrorPath    string `mapstructure:"MIRROR_PATH"`

	EmailIncludeContactDetails bool   `mapstructure:"EMAIL_INCLUDE_CONTACT_DETAILS"`
	MultiCityDisablesReturn    bool   `mapstructure:"MULTI_CITY_DISABLES_RETURN"`
	DefaultCurrency            string `mapstructure:"DEFAULT_CURRENCY"`

	JWTSecret  string `mapstructure:"JWT_SECRET"`
	EnableCORS bool   `mapstructure:"ENABLE_CORS"`

	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`

	WhatsAppToken        string `mapstructure:"WHATSAPP_TOKEN"`
	PhoneNumberID        string `mapstructure:"PHONE_NUMBER_ID"`
	VendorWhatsAppNumber string `mapstructure:"VENDOR_WHATSAPP_NUMBER"`
}

const (
	BackendREST  = "rest"
	BackendSheet = "sheet"
)

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment only")
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "enquiries.db")
	viper.SetDefault("BACKEND", BackendREST)
	viper.SetDefault("REST_ENDPOINT", "http://127.0.0.1:8080/api/enquiries")
	viper.SetDefault("MIRROR_PATH", "data.json")
	viper.SetDefault("EMAIL_INCLUDE_CONTACT_DETAILS", true)
	viper.SetDefault("MULTI_CITY_DISABLES_RETURN", true)
	viper.SetDefault("DEFAULT_CURRENCY", "INR")
	viper.SetDefault("ENABLE_CORS", false)

	viper.BindEnv("DATABASE_DSN")
	viper.BindEnv("SHEET_ENDPOINT")
	viper.BindEnv("SHEET_TOKEN")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("WHATSAPP_TOKEN")
	viper.BindEnv("PHONE_NUMBER_ID")
	viper.BindEnv("VENDOR_WHATSAPP_NUMBER")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
