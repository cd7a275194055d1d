// Package db holds what SQL and key-value clients have in common.
package db

import (
	"io"
	"log"
)

// CloseClient closes c and logs the outcome under name
func CloseClient(name string, c io.Closer) {
	if c == nil {
		log.Printf("[INFO] `%s` Nothing to Close", name)
		return
	}
	if err := c.Close(); err != nil {
		log.Printf("[WARN] Failed to Close `%s`: %v", name, err)
	} else {
		log.Printf("[INFO] `%s` Closed", name)
	}
}
