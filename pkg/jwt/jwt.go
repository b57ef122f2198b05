package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de Parse. ErrExpired permite al gate distinguir un token caducado de uno inválido.
var (
	ErrExpired = errors.New("jwt: token expirado")
	ErrInvalid = errors.New("jwt: token inválido")
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Name y Email viajan por compatibilidad con el frontend; la autorización solo usa UserID.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Name   string `json:"nombre,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Signer firma y verifica tokens con un secreto HMAC y un algoritmo fijo.
type Signer struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	issuer     string
	expiration time.Duration
}

// NewSigner valida los parámetros. algorithm acepta HS256, HS384 o HS512 (vacío = HS256).
func NewSigner(secret, algorithm, issuer string, expMinutes int) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	method, err := methodFor(algorithm)
	if err != nil {
		return nil, err
	}
	if expMinutes <= 0 {
		expMinutes = 60
	}
	return &Signer{
		secret:     []byte(secret),
		method:     method,
		issuer:     issuer,
		expiration: time.Duration(expMinutes) * time.Minute,
	}, nil
}

func methodFor(algorithm string) (*jwt.SigningMethodHMAC, error) {
	switch algorithm {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("jwt: algoritmo no soportado %q", algorithm)
	}
}

// SupportedAlgorithm indica si algorithm es aceptado por NewSigner.
func SupportedAlgorithm(algorithm string) bool {
	_, err := methodFor(algorithm)
	return err == nil
}

// Generate genera un token firmado para el usuario.
func (s *Signer) Generate(userID int64, name, email string) (string, error) {
	return s.generateAt(time.Now(), userID, name, email)
}

func (s *Signer) generateAt(now time.Time, userID int64, name, email string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		UserID: userID,
		Name:   name,
		Email:  email,
	}
	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma, algoritmo y expiración y devuelve los claims.
// Los errores envuelven ErrExpired o ErrInvalid.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: claims inválidos", ErrInvalid)
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: user_id ausente", ErrInvalid)
	}
	return claims, nil
}
