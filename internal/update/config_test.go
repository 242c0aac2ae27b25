package update

import "testing"

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.TickSeconds != 60 || cfg.ToleranceMinutes != 2 {
		t.Fatalf("unexpected schedule defaults: %+v", cfg)
	}
	if cfg.UserID != "demo_user" || cfg.DBPath != "medtui.db" {
		t.Fatalf("unexpected identity defaults: %+v", cfg)
	}
	if cfg.DesktopNotifications || cfg.SchedulerBuffer != 16 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("MEDTUI_API_BASE_URL", "http://localhost:4000")
	t.Setenv("MEDTUI_USER_ID", "user-9")
	t.Setenv("MEDTUI_DB_PATH", "data/meds.db")
	t.Setenv("MEDTUI_TICK_SECONDS", "30")
	t.Setenv("MEDTUI_TOLERANCE_MINUTES", "5")
	t.Setenv("MEDTUI_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("MEDTUI_SCHEDULER_BUFFER", "128")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.APIBaseURL != "http://localhost:4000" || cfg.UserID != "user-9" || cfg.DBPath != "data/meds.db" {
		t.Fatalf("unexpected identity overrides: %+v", cfg)
	}
	if cfg.TickSeconds != 30 || cfg.ToleranceMinutes != 5 {
		t.Fatalf("unexpected schedule overrides: %+v", cfg)
	}
	if !cfg.DesktopNotifications || cfg.SchedulerBuffer != 128 {
		t.Fatalf("unexpected runtime overrides: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("MEDTUI_TICK_SECONDS", "not-a-number")
	t.Setenv("MEDTUI_DESKTOP_NOTIFICATIONS", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.TickSeconds != 60 || cfg.DesktopNotifications {
		t.Fatalf("expected defaults preserved for invalid env, got %+v", cfg)
	}
}
