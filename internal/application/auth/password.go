package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

// HashPassword genera el hash bcrypt de una contraseña en texto plano.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara una contraseña en texto plano con su hash.
func CheckPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NormalizeCredentials migra credenciales heredadas: si traen la contraseña en texto
// plano la reemplaza por su hash. Las credenciales ya hasheadas no cambian.
func NormalizeCredentials(c *entity.Credentials) error {
	if c == nil || c.Password == "" {
		return nil
	}
	hash, err := HashPassword(c.Password)
	if err != nil {
		return err
	}
	c.PasswordHash = hash
	c.Password = ""
	return nil
}
