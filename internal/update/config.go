package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	APIBaseURL           string
	UserID               string
	DBPath               string
	TickSeconds          int
	ToleranceMinutes     int
	DesktopNotifications bool
	SchedulerBuffer      int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		APIBaseURL:           "",
		UserID:               "demo_user",
		DBPath:               "medtui.db",
		TickSeconds:          60,
		ToleranceMinutes:     2,
		DesktopNotifications: false,
		SchedulerBuffer:      16,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("MEDTUI_API_BASE_URL")); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("MEDTUI_USER_ID")); v != "" {
		cfg.UserID = v
	}
	if v := strings.TrimSpace(os.Getenv("MEDTUI_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvInt("MEDTUI_TICK_SECONDS"); ok && v > 0 {
		cfg.TickSeconds = v
	}
	if v, ok := getEnvInt("MEDTUI_TOLERANCE_MINUTES"); ok && v >= 0 {
		cfg.ToleranceMinutes = v
	}
	if v, ok := getEnvBool("MEDTUI_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("MEDTUI_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
