package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/intent-parser/internal/gazetteer"
)

func main() {
	host := envOr("MEILISEARCH_HOST", "http://localhost:7700")
	apiKey := os.Getenv("MEILISEARCH_MASTER_KEY")
	indexName := envOr("MEILISEARCH_INDEX_NAME", "provinces")

	// Meilisearch connection
	meiliClient := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))

	// Test Meilisearch connection
	health, err := meiliClient.Health()
	if err != nil {
		log.Fatal("Không thể kết nối Meilisearch:", err)
	}
	fmt.Printf("Meilisearch status: %s\n", health.Status)

	index := meiliClient.Index(indexName)

	// Set index settings
	fmt.Println("Đang cấu hình Meilisearch index settings...")
	settings := &meilisearch.Settings{
		SearchableAttributes: []string{"name", "aliases"},
		SortableAttributes:   []string{"name"},
		RankingRules: []string{
			"words",
			"typo",
			"proximity",
			"attribute",
			"sort",
			"exactness",
		},
	}

	task, err := index.UpdateSettings(settings)
	if err != nil {
		log.Fatal("Lỗi cập nhật settings:", err)
	}
	fmt.Printf("Settings update task ID: %d\n", task.TaskUID)

	// Wait for settings update to complete
	fmt.Println("Đang chờ settings update hoàn thành...")
	for {
		taskInfo, err := meiliClient.GetTask(task.TaskUID)
		if err != nil {
			log.Fatal("Lỗi check task status:", err)
		}
		if taskInfo.Status == "succeeded" {
			fmt.Println("Settings update thành công!")
			break
		} else if taskInfo.Status == "failed" {
			log.Fatal("Settings update thất bại:", taskInfo.Error)
		}
		time.Sleep(1 * time.Second)
	}

	// Load embedded province table
	fmt.Println("Đang nạp bảng tỉnh/thành nhúng sẵn...")
	provinces, err := gazetteer.LoadProvinceDocs()
	if err != nil {
		log.Fatal("Lỗi nạp bảng tỉnh/thành:", err)
	}

	docs := make([]interface{}, len(provinces))
	for i, p := range provinces {
		docs[i] = p
	}

	fmt.Printf("Đang seed %d tỉnh/thành vào Meilisearch...\n", len(docs))
	if _, err := index.AddDocuments(docs, "id"); err != nil {
		log.Fatal("Lỗi insert documents:", err)
	}

	fmt.Printf("Hoàn thành! Đã seed %d documents vào Meilisearch\n", len(docs))

	// Check final count
	fmt.Println("Đang kiểm tra số lượng documents trong Meilisearch...")
	time.Sleep(2 * time.Second) // Wait for indexing

	search, err := index.Search("", &meilisearch.SearchRequest{Limit: 1})
	if err != nil {
		log.Printf("Lỗi check count: %v", err)
	} else {
		fmt.Printf("Tổng số documents trong Meilisearch: %d\n", search.EstimatedTotalHits)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
