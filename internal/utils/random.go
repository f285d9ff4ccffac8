package utils

import (
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

var commonFirstNames = []string{
	"Alex", "Bailey", "Cameron", "Casey", "Charlie", "Dakota", "Drew", "Emerson",
	"Finley", "Harper", "Hayden", "Jamie", "Jordan", "Kendall", "Logan", "Morgan",
	"Parker", "Quinn", "Riley", "Rowan", "Sam", "Skyler", "Taylor", "Tyler",
}

var commonLastNames = []string{
	"Anderson", "Brooks", "Carter", "Davis", "Edwards", "Foster", "Garcia", "Hayes",
	"Jackson", "Kelly", "Lewis", "Mitchell", "Nguyen", "Olsen", "Parker", "Reed",
	"Sanders", "Thompson", "Walker", "Young",
}

func GenerateRandomFullName() string {
	return commonFirstNames[rand.Intn(len(commonFirstNames))] + " " + commonLastNames[rand.Intn(len(commonLastNames))]
}

var roles = []domain.Role{
	domain.RoleCoordinator,
	domain.RoleDirector,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""
	for _, part := range parts {
		length := rand.Intn(len(part)) + 1
		username += part[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
