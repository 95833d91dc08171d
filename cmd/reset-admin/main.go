package main

import (
	"flag"
	"os"

	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/pkg/database"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log := logrus.New()

	email := flag.String("email", "admin@papeleria.local", "account to reset")
	password := flag.String("password", "", "new password (falls back to ADMIN_PASSWORD, then admin123)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, relying on environment")
	}

	db := database.ConnectDB(log)

	var user model.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		log.WithError(err).Fatalf("user %s not found", *email)
	}

	newPassword := *password
	if newPassword == "" {
		newPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if newPassword == "" {
		newPassword = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}

	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		log.WithError(err).Fatal("failed to update password")
	}

	log.WithField("email", *email).Info("password reset")
}
