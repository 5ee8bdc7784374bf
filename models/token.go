package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT token'ın içindeki veriler (payload).
//
// Payload'da admin ID'si ve token'ın expire süresi bulunur.
// Server her request'te bu token'ı doğrular — DB'ye gitmeden
// isteği yapanın kim olduğunu bilir.
//
// Birden fazla katman (services, ws, middleware) tarafından kullanıldığı için
// models paketinde tanımlanır.
type TokenClaims struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
