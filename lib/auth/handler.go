package auth

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"sap-talent-backend/config"
	"sap-talent-backend/db"
	operatorstore "sap-talent-backend/lib/auth/store"
	authutils "sap-talent-backend/lib/utils/auth-utils"
	authapimodels "sap-talent-backend/models/api/auth"
	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	Login(email, password string) (response authapimodels.JWTResponse, err error)
	EnsureSeedOperator() error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: operatorstore.NewInstance(db.DB),
	}
}

type impl struct {
	store operatorstore.Provider
}

func (i impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(email)
	if err != nil {
		logger.
			WithError(err).
			Error("failed to find operator by email")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("no operator with this email")
		return authapimodels.JWTResponse{}, errors.New("invalid email or password")
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		logger.Debug("operator failed the password check")
		return authapimodels.JWTResponse{}, errors.New("invalid email or password")
	}
	tokenString, err := authutils.GetToken(user.ID, fmt.Sprintf("%s %s", user.FirstName, user.LastName))
	if err != nil {
		logger.WithError(err).Error("failed to sign JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"LastLogin": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("failed to update last login time")
	}
	return authapimodels.JWTResponse{
		Token: tokenString,
	}, nil
}

// EnsureSeedOperator creates the bootstrap operator account from the config
// when no account with that email exists yet.
func (i impl) EnsureSeedOperator() error {
	email := config.Conf.Auth.SeedEmail
	if email == "" {
		return nil
	}
	existing, err := i.store.FindByEmail(email)
	if err != nil {
		return errors.Wrap(err, "failed to check seed operator")
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(config.Conf.Auth.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash seed operator password")
	}
	_, err = i.store.Create(dbmodels.OperatorUser{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "Operator",
	})
	if err != nil {
		return errors.Wrap(err, "failed to create seed operator")
	}
	log.WithField("email", email).Info("seed operator account created")
	return nil
}
