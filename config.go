package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Zachkp/folio/motion"
)

// Config holds the settings read from the environment (and .env).
type Config struct {
	Port        string
	ContentFile string

	Typewriter            motion.TypewriterOptions
	CounterDuration       time.Duration
	CounterMobileDuration time.Duration
	FrameRate             int

	ContactDelay time.Duration
}

func loadConfig() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	tw := motion.DefaultTypewriterOptions()
	tw.TypeSpeed = envMillis("TYPE_SPEED_MS", tw.TypeSpeed)
	tw.DeleteSpeed = envMillis("DELETE_SPEED_MS", tw.DeleteSpeed)
	tw.Pause = envMillis("PAUSE_MS", tw.Pause)

	return Config{
		Port:                  port,
		ContentFile:           os.Getenv("CONTENT_FILE"),
		Typewriter:            tw,
		CounterDuration:       envMillis("COUNTER_DURATION_MS", 2*time.Second),
		CounterMobileDuration: envMillis("COUNTER_MOBILE_DURATION_MS", time.Second),
		FrameRate:             envInt("FRAME_RATE", 60),
		ContactDelay:          envMillis("CONTACT_DELAY_MS", 2*time.Second),
	}
}

const maxMillis = float64(24 * time.Hour / time.Millisecond)

// envMillis reads a millisecond count in [0, 24h]. NaN and Inf are rejected.
func envMillis(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || !(n >= 0 && n <= maxMillis) {
		log.Printf("WARNING: invalid %s=%q, using %v", key, v, def)
		return def
	}
	return time.Duration(n * float64(time.Millisecond))
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("WARNING: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
