// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain keeps matrix service bearer tokens in the OS credential store.
//
// Tokens are stored per service host, so one installation can talk to several
// displays. macOS uses the native security command, Windows the Credential
// Manager and Linux the Secret Service or pass. Where none of these exist an
// encrypted file keyring under the XDG state dir is used when
// MATRIXCTL_KEYRING_PASSWORD is set.
package keychain

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"

	"sportsmatrix/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "matrixctl"

// EnvFilePassword unlocks the file keyring fallback.
const EnvFilePassword = "MATRIXCTL_KEYRING_PASSWORD"

// ErrNotFound is returned when no token is stored for a host.
var ErrNotFound = errors.New("keychain: no token stored")

// Global keychain manager instance
var (
	globalManager *Manager
	mu            sync.Mutex
)

// Manager provides thread-safe token storage.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// keychainBackend is implemented by native stores that bypass keyring.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// NewManager opens the platform credential store.
func NewManager() (*Manager, error) {
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
	}
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewWithKeyring wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func NewWithKeyring(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the process-wide manager, retrying initialization after a failure.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()
	if globalManager != nil {
		return globalManager, nil
	}
	m, err := NewManager()
	if err != nil {
		return nil, err
	}
	globalManager = m
	return m, nil
}

func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName: ServiceName,
		PassPrefix:  ServiceName,
	}
	switch runtime.GOOS {
	case "darwin":
		cfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		cfg.AllowedBackends = []keyring.BackendType{keyring.WinCredBackend}
		cfg.WinCredPrefix = ServiceName
	default:
		cfg.AllowedBackends = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
		cfg.LibSecretCollectionName = ServiceName
		cfg.KWalletAppID = ServiceName
		cfg.KWalletFolder = ServiceName
	}

	if pw := os.Getenv(EnvFilePassword); pw != "" {
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		cfg.AllowedBackends = append(cfg.AllowedBackends, keyring.FileBackend)
		cfg.FileDir = dir
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(pw)
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("no credential store available (set %s to use an encrypted file): %w", EnvFilePassword, err)
	}
	return ring, nil
}

// tokenKey namespaces a token by service host.
func tokenKey(host string) string {
	return "token:" + strings.ToLower(strings.TrimSpace(host))
}

// SaveToken stores the bearer token used for host.
func (m *Manager) SaveToken(host, token string) error {
	if token == "" {
		return errors.New("keychain: empty token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Set(tokenKey(host), token)
	}
	return m.ring.Set(keyring.Item{Key: tokenKey(host), Label: ServiceName + " " + host, Data: []byte(token)})
}

// LoadToken returns the token stored for host, or ErrNotFound.
func (m *Manager) LoadToken(host string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var token string
	if m.backend != nil {
		v, err := m.backend.Get(tokenKey(host))
		if err != nil {
			return "", err
		}
		token = v
	} else {
		it, err := m.ring.Get(tokenKey(host))
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		if err != nil {
			return "", err
		}
		token = string(it.Data)
	}
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

// DeleteToken removes the token for host. Deleting a missing token is not an error.
func (m *Manager) DeleteToken(host string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Delete(tokenKey(host))
	}
	if err := m.ring.Remove(tokenKey(host)); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
