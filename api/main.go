package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const version = "1.0.0"

type config struct {
	port int
	env  string
	db   struct {
		dsn                string
		maxOpenConnections int
		maxIdleConnections int
		maxIdleTime        time.Duration
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	cors struct {
		trustedOrigins []string
	}
	jwtSecret  string
	bcryptCost int
	uploadsDir string
}

type application struct {
	config    config
	logger    zerolog.Logger
	storage   *storage
	tokens    *tokenIssuer
	passwords *passwordHasher
	mailer    *mailer
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var cfg config
	flag.IntVar(&cfg.port, "port", 3000, "Server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment [development|production]")

	flag.StringVar(&cfg.db.dsn, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConnections, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConnections, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	var maxIdleTime string
	flag.StringVar(&maxIdleTime, "db-max-idle-time", "15m", "PostgreSQL max connection idle time")

	flag.StringVar(&cfg.smtp.host, "smtp-host", os.Getenv("SMTP_HOST"), "SMTP host")
	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 25
	}
	flag.IntVar(&cfg.smtp.port, "smtp-port", smtpPort, "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", os.Getenv("SMTP_USERNAME"), "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", os.Getenv("SMTP_PASSWORD"), "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", os.Getenv("SMTP_SENDER"), "SMTP sender")

	var trustedOrigins string
	flag.StringVar(&trustedOrigins, "cors-trusted-origins", "*", "Trusted CORS origins (space separated)")

	flag.StringVar(&cfg.jwtSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "JWT signing secret")
	flag.IntVar(&cfg.bcryptCost, "bcrypt-cost", 10, "bcrypt work factor")
	flag.StringVar(&cfg.uploadsDir, "uploads-dir", "uploads", "Directory holding user photos")
	flag.Parse()

	cfg.cors.trustedOrigins = strings.Fields(trustedOrigins)

	d, err := time.ParseDuration(maxIdleTime)
	if err != nil {
		cfg.db.maxIdleTime = 15 * time.Minute
		logger.Warn().Str("db-max-idle-time", maxIdleTime).Msgf("invalid duration, defaulting to %s", cfg.db.maxIdleTime)
	} else {
		cfg.db.maxIdleTime = d
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Msg("established a connection with database")

	if cfg.jwtSecret == "" {
		// tokens won't survive a restart without a configured secret
		secret := make([]byte, 32)
		_, err = rand.Read(secret)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to generate JWT secret")
		}
		cfg.jwtSecret = string(secret)
		logger.Warn().Msg("no JWT secret configured, generated an ephemeral one")
	}

	app := &application{
		config:    cfg,
		logger:    logger,
		storage:   newStorage(db),
		tokens:    newTokenIssuer([]byte(cfg.jwtSecret)),
		passwords: newPasswordHasher(cfg.bcryptCost),
	}
	if cfg.smtp.host != "" {
		app.mailer = newMailer(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.port),
		Handler:      composeRoutes(app),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Info().Str("env", cfg.env).Int("port", cfg.port).Msg("starting server")
	err = srv.ListenAndServe()
	logger.Fatal().Err(err).Msg("server stopped")
}
