package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Export  ExportConfig
	Log     LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// StorageConfig ubicación del archivo CSV de estado.
type StorageConfig struct {
	DataFile string
}

// ExportConfig directorio de salida para los reportes PDF/XLSX.
type ExportConfig struct {
	Dir string
}

// LogConfig nivel de log.
type LogConfig struct {
	Level string
}

// PDFPath devuelve la ruta del reporte PDF para una tienda.
func (c ExportConfig) PDFPath(shop, stamp string) string {
	return filepath.Join(c.Dir, "inventario_"+shop+"_"+stamp+".pdf")
}

// XLSXPath devuelve la ruta del libro XLSX exportado.
func (c ExportConfig) XLSXPath(stamp string) string {
	return filepath.Join(c.Dir, "inventario_"+stamp+".xlsx")
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATA_FILE, EXPORT_DIR, LOG_LEVEL.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "inventario-equipos"),
		},
		Storage: StorageConfig{
			DataFile: getString(v, "DATA_FILE", "inventario.csv"),
		},
		Export: ExportConfig{
			Dir: getString(v, "EXPORT_DIR", "."),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}
