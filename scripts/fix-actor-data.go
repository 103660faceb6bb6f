package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	actorPrefix = "actor:"
	actorIndex  = "actor:index"
)

// Just the fields sweeps and patches depend on
type actorData struct {
	ID    string `json:"id"`
	Items []struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		System struct {
			AttackUsed json.RawMessage `json:"attackUsed"`
		} `json:"system"`
	} `json:"items"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning actor documents...")

	iter := client.Scan(ctx, 0, actorPrefix+"*", 0).Iterator()

	var corruptedKeys []string
	var unindexed []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		if key == actorIndex {
			continue
		}
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var actor actorData
		if err := json.Unmarshal([]byte(data), &actor); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		if problem := checkActor(key, &actor); problem != "" {
			fmt.Printf("✗ %s: %s\n", key, problem)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		indexed, err := client.SIsMember(ctx, actorIndex, actor.ID).Result()
		if err != nil {
			fmt.Printf("Error checking index for %s: %v\n", key, err)
			continue
		}
		if !indexed {
			fmt.Printf("✗ %s is missing from %s\n", key, actorIndex)
			unindexed = append(unindexed, actor.ID)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d actors, found %d corrupted and %d unindexed\n",
		checkedCount, len(corruptedKeys), len(unindexed))

	if len(corruptedKeys) == 0 && len(unindexed) == 0 {
		fmt.Println("No problems found!")
		return
	}

	for _, id := range unindexed {
		if err := client.SAdd(ctx, actorIndex, id).Err(); err != nil {
			fmt.Printf("Failed to index %s: %v\n", id, err)
		} else {
			fmt.Printf("Indexed %s\n", id)
		}
	}

	if len(corruptedKeys) == 0 {
		return
	}

	fmt.Println("\nCorrupted keys:")
	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these corrupted entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no deletions made")
		return
	}

	for _, key := range corruptedKeys {
		id := strings.TrimPrefix(key, actorPrefix)
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
			continue
		}
		client.SRem(ctx, actorIndex, id)
		fmt.Printf("Deleted %s\n", key)
	}
	fmt.Println("\nCleanup complete!")
}

// checkActor returns what is wrong with a document that parsed, or ""
func checkActor(key string, actor *actorData) string {
	if actor.ID == "" || actorPrefix+actor.ID != key {
		return fmt.Sprintf("id %q does not match its key", actor.ID)
	}

	seen := make(map[string]bool, len(actor.Items))
	for i, item := range actor.Items {
		if item.ID == "" {
			return fmt.Sprintf("item %d has no id", i)
		}
		if seen[item.ID] {
			return fmt.Sprintf("item id %s appears twice", item.ID)
		}
		seen[item.ID] = true

		// attackUsed must be an object or absent; patches write into it
		raw := strings.TrimSpace(string(item.System.AttackUsed))
		if raw != "" && raw != "null" && !strings.HasPrefix(raw, "{") {
			return fmt.Sprintf("item %s has attackUsed %s", item.ID, raw)
		}
	}
	return ""
}
