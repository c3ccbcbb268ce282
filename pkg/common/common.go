package common

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
)

const ENABLED = "enabled"

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(int64(os.Getpid()) % 1023)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake based int64 id
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// Sha256HashWithSalt computes the salted sha256 hex digest of src
func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src))
	h.Write([]byte(salt))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// GetSecretSalt reads the password salt from the environment,
// falling back to a fixed development value.
func GetSecretSalt() string {
	salt := os.Getenv("ECOMMERCE_SECRET_SALT")
	if salt == "" {
		salt = "SJeLCeyZ"
	}
	return salt
}

func IfEmptyStr(src string, defval string) string {
	if src == "" {
		return defval
	}
	return src
}
