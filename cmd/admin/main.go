package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"meetz/backend/internal/config"
	"meetz/backend/internal/models"
	"meetz/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	s := storage.NewStorageService(db, nil) // no redis needed for admin CLI
	ctx := context.Background()

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: resolve-report, blacklist-add, blacklist-list")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "resolve-report":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin resolve-report <report_id> <note...>")
			os.Exit(1)
		}
		reportID, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid report ID. Please provide an integer.")
			os.Exit(1)
		}
		note := strings.Join(os.Args[3:], " ")
		if err := s.ResolveReport(ctx, uint(reportID), note); err != nil {
			log.Fatalf("Error resolving report: %v", err)
		}
		fmt.Printf("Report %d marked as resolved.\n", reportID)

	case "blacklist-add":
		if len(os.Args) < 5 {
			fmt.Println("Usage: admin blacklist-add <manager_id> <name> <email> [phone]")
			os.Exit(1)
		}
		managerID, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid manager ID. Please provide an integer.")
			os.Exit(1)
		}
		entry := &models.BlackList{
			ManagerID: uint(managerID),
			Name:      os.Args[3],
			Email:     os.Args[4],
		}
		if len(os.Args) > 5 {
			entry.Phone = os.Args[5]
		}
		if err := s.SaveBlackList(ctx, entry); err != nil {
			log.Fatalf("Error adding blacklist entry: %v", err)
		}
		fmt.Printf("Blacklist entry %d created.\n", entry.ID)

	case "blacklist-list":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin blacklist-list <manager_id>")
			os.Exit(1)
		}
		managerID, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid manager ID. Please provide an integer.")
			os.Exit(1)
		}
		entries, err := s.ListBlackListByManager(ctx, uint(managerID))
		if err != nil {
			log.Fatalf("Error listing blacklist: %v", err)
		}
		for _, e := range entries {
			info := e.Info()
			fmt.Printf("%d\t%s\t%s\t%s\n", info.BlackListID, info.Name, info.Email, info.Phone)
		}

	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
