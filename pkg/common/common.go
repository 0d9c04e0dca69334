package common

import (
	"os"

	"github.com/bwmarrin/snowflake"
)

var snowflakeNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(int64(os.Getpid() % 1024))
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 returns a time-ordered unique id. Monotonic generation means the
// id sequence doubles as the record insertion sequence.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}
