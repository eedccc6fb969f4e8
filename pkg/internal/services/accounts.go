package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/models"
	"github.com/zhangmm/zblog/pkg/internal/security"
	"gorm.io/gorm"
)

var ErrBadCredentials = errors.New("invalid email or password")

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Preload("Role").Where("id = ?", id).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func GetAccountWithEmail(email string) (models.Account, error) {
	var account models.Account
	if err := database.C.Preload("Role").Where("email = ?", email).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func ListAccount(take int, offset int) ([]models.Account, int64, error) {
	var count int64
	if err := database.C.Model(&models.Account{}).Count(&count).Error; err != nil {
		return nil, count, err
	}

	var accounts []models.Account
	if err := database.C.Preload("Role").
		Offset(offset).Limit(take).
		Order("created_at ASC").
		Find(&accounts).Error; err != nil {
		return nil, count, err
	}

	return accounts, count, nil
}

// CreateAccount registers a fresh, unconfirmed account holding the default
// role. Duplicate email or name is rejected up front so the caller sees a
// validation failure instead of a raw constraint error.
func CreateAccount(name, email, password string) (models.Account, error) {
	var account models.Account

	var count int64
	if err := database.C.Model(&models.Account{}).
		Where("email = ? OR name = ?", email, name).
		Count(&count).Error; err != nil {
		return account, err
	}
	if count > 0 {
		return account, fmt.Errorf("email or username is already taken")
	}

	role, err := GetDefaultRole()
	if err != nil {
		return account, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %v", err)
	}

	account = models.Account{
		Name:         name,
		Nick:         name,
		PasswordHash: hash,
		MemberSince:  time.Now(),
		RoleID:       role.ID,
		Role:         role,
	}
	account.SetEmail(email)

	if err := database.C.Create(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

// Authenticate resolves basic credentials into an account. Failures collapse
// into ErrBadCredentials so the response cannot leak which field was wrong.
func Authenticate(email, password string) (models.Account, error) {
	account, err := GetAccountWithEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrBadCredentials
		}
		return account, err
	}

	if !security.VerifyPassword(account.PasswordHash, password) {
		return account, ErrBadCredentials
	}

	return account, nil
}

// AuthenticateToken resolves an API token into an account.
func AuthenticateToken(token string) (models.Account, error) {
	id, err := security.VerifyToken(token)
	if err != nil {
		return models.Account{}, err
	}
	return GetAccount(id)
}

// PingAccount refreshes the last-seen timestamp; called on every
// authenticated request.
func PingAccount(account models.Account) {
	database.C.Model(&account).Update("last_seen_at", lo.ToPtr(time.Now()))
}

func ConfirmAccount(account models.Account) error {
	if account.Confirmed {
		return nil
	}
	return database.C.Model(&account).Update("confirmed", true).Error
}

// ConfirmAccountWithToken redeems the confirmation token that registration
// mailed out.
func ConfirmAccountWithToken(token string) (models.Account, error) {
	id, err := security.VerifyConfirmToken(token)
	if err != nil {
		return models.Account{}, err
	}

	account, err := GetAccount(id)
	if err != nil {
		return account, err
	}

	if err := ConfirmAccount(account); err != nil {
		return account, err
	}
	account.Confirmed = true
	return account, nil
}

func SetAccountRole(account models.Account, role models.Role) (models.Account, error) {
	account.RoleID = role.ID
	account.Role = role
	if err := database.C.Omit("Role").Save(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

// EditAccountProfile updates the mutable profile fields, re-deriving the
// about-me HTML from the raw source.
func EditAccountProfile(account models.Account, nick, location, description string) (models.Account, error) {
	account.Nick = nick
	account.Location = location
	account.SetDescription(description)

	if err := database.C.Omit("Role").Save(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func ChangeAccountPassword(account models.Account, password string) error {
	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("unable to hash password: %v", err)
	}
	return database.C.Model(&account).Update("password_hash", hash).Error
}

// SendConfirmationEmail queues the account-confirmation message carrying a
// time-limited token; the caller gets the task handle and never waits for
// delivery.
func SendConfirmationEmail(account models.Account) (*MailTask, error) {
	token, err := security.IssueConfirmToken(account.ID, ConfirmTokenTTL())
	if err != nil {
		return nil, fmt.Errorf("unable to issue confirmation token: %v", err)
	}

	body := fmt.Sprintf(
		"Dear %s,\n\nWelcome to %s! To confirm your account, use this token:\n\n%s\n\nIf you did not register, simply ignore this email.",
		account.Nick,
		viper.GetString("site.name"),
		token,
	)

	return MailQueue.Enqueue(account.Email, "Confirm Your Account", body), nil
}

func ConfirmTokenTTL() time.Duration {
	ttl := viper.GetDuration("security.confirm_token_ttl")
	if ttl <= 0 {
		ttl = time.Hour
	}
	return ttl
}
