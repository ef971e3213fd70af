// Package validation проверяет идентификаторы, приходящие извне:
// namespace приложения, id устройства и ключ слота сохранения.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// NamespacePattern определяет допустимый формат namespace
// Латинские буквы, цифры, дефис и нижнее подчеркивание, 1-64 символа
var NamespacePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// DeviceIDPattern определяет допустимый формат id устройства (uuid проходит)
var DeviceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.:-]{1,64}$`)

const (
	// MaxKeyLen максимальная длина ключа слота в байтах
	MaxKeyLen = 256
)

// AppNamespace возвращает namespace, в котором живут ключи и часы приложения appID
func AppNamespace(appID int64) string {
	return fmt.Sprintf("app-%d", appID)
}

// ValidateNamespace проверяет имя namespace
func ValidateNamespace(namespace string) error {
	if namespace == "" {
		return fmt.Errorf("namespace cannot be empty")
	}
	if !NamespacePattern.MatchString(namespace) {
		return fmt.Errorf("namespace %q can only contain letters, numbers, '-' and '_' (max 64)", namespace)
	}
	return nil
}

// ValidateDeviceID проверяет id устройства
func ValidateDeviceID(deviceID string) error {
	if deviceID == "" {
		return fmt.Errorf("device id cannot be empty")
	}
	if !DeviceIDPattern.MatchString(deviceID) {
		return fmt.Errorf("device id %q can only contain letters, numbers, '.', ':', '-' and '_' (max 64)", deviceID)
	}
	return nil
}

// ValidateKey проверяет ключ слота сохранения.
// NUL запрещен: он разделяет поля в идентификаторах версий.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if len(key) > MaxKeyLen {
		return fmt.Errorf("key must not exceed %d bytes", MaxKeyLen)
	}
	if strings.ContainsRune(key, 0) {
		return fmt.Errorf("key must not contain NUL bytes")
	}
	return nil
}
