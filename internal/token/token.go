package token

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenTTL — термін дії обох токенів.
const TokenTTL = 3600 * time.Second

// Ролі, які записуються в claim "role".
const (
	RolePublisher = "publisher"
	RoleUser      = "user"
)

// ErrMissingCredentials повертається, якщо App ID або App Certificate
// не налаштовано.
var ErrMissingCredentials = errors.New("token: app id or app certificate is not configured")

// Issuer видає короткоживучі RTC/RTM токени, підписані App Certificate.
// Токени stateless: однакові вхідні дані до закінчення терміну дії дають
// незалежно валідні токени.
type Issuer struct {
	AppID   string
	AppCert string
}

// NewIssuer створює Issuer. Перевірка ключів відбувається під час підпису.
func NewIssuer(appID, appCert string) *Issuer {
	return &Issuer{AppID: appID, AppCert: appCert}
}

// RtcToken видає токен сесії, прив'язаний до каналу (roomID) та користувача.
func (i *Issuer) RtcToken(channel, account string) (string, error) {
	return i.sign(jwt.MapClaims{
		"app_id":  i.AppID,
		"channel": channel,
		"account": account,
		"role":    RolePublisher,
	})
}

// RtmToken видає токен обміну повідомленнями, прив'язаний лише до користувача.
func (i *Issuer) RtmToken(account string) (string, error) {
	return i.sign(jwt.MapClaims{
		"app_id":  i.AppID,
		"account": account,
		"role":    RoleUser,
	})
}

func (i *Issuer) sign(claims jwt.MapClaims) (string, error) {
	if i.AppID == "" || i.AppCert == "" {
		return "", ErrMissingCredentials
	}

	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(TokenTTL).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.AppCert))
}
