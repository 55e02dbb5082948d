package config

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	userStoreVar     = "USER_STORE"
	sqlitePathVar    = "SQLITE_PATH"
	databaseURLVar   = "DATABASE_URL"
	sessionStoreVar  = "SESSION_STORE"
	redisAddrVar     = "REDIS_ADDR"
	redisPasswordVar = "REDIS_PASSWORD"
	redisDBVar       = "REDIS_DB"
)

// Backing store names
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type StoreConfig interface {
	GetUserStore() string
	GetSQLitePath() string
	GetDatabaseURL() string
	GetSessionStore() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type Store struct {
	userStore     string
	sqlitePath    string
	databaseURL   string
	sessionStore  string
	redisAddr     string
	redisPassword string
	redisDB       int
}

var _ StoreConfig = Store{}

func loadStore(lookup LookupFunc) (Store, error) {
	s := Store{
		userStore:     strings.ToLower(lookup.get(userStoreVar, StoreMemory)),
		sqlitePath:    lookup.get(sqlitePathVar, "./data/members.db"),
		databaseURL:   lookup.get(databaseURLVar, ""),
		sessionStore:  strings.ToLower(lookup.get(sessionStoreVar, StoreMemory)),
		redisAddr:     lookup.get(redisAddrVar, "localhost:6379"),
		redisPassword: lookup.get(redisPasswordVar, ""),
	}

	switch s.userStore {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if s.databaseURL == "" {
			return Store{}, fmt.Errorf("[config] %s is required when %s=%s", databaseURLVar, userStoreVar, StorePostgres)
		}
	default:
		return Store{}, fmt.Errorf("[config] unknown %s %q", userStoreVar, s.userStore)
	}

	switch s.sessionStore {
	case StoreMemory, StoreRedis:
	default:
		return Store{}, fmt.Errorf("[config] unknown %s %q", sessionStoreVar, s.sessionStore)
	}

	db, err := strconv.Atoi(lookup.get(redisDBVar, "0"))
	if err != nil {
		return Store{}, fmt.Errorf("[config] %s: %w", redisDBVar, err)
	}
	s.redisDB = db

	return s, nil
}

func (s Store) GetUserStore() string {
	return s.userStore
}

func (s Store) GetSQLitePath() string {
	return s.sqlitePath
}

func (s Store) GetDatabaseURL() string {
	return s.databaseURL
}

func (s Store) GetSessionStore() string {
	return s.sessionStore
}

func (s Store) GetRedisAddr() string {
	return s.redisAddr
}

func (s Store) GetRedisPassword() string {
	return s.redisPassword
}

func (s Store) GetRedisDB() int {
	return s.redisDB
}
