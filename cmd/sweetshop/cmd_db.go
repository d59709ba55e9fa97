package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/sweetshop/app/models"
	"github.com/shashiranjanraj/sweetshop/app/repositories"
	"github.com/shashiranjanraj/sweetshop/config"
	"github.com/shashiranjanraj/sweetshop/pkg/auth"
	"github.com/shashiranjanraj/sweetshop/pkg/database"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
)

func init() {
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "admin@sweetshop.local", "email of the seeded admin account")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "", "password of the seeded admin account (required)")
}

// sweetshop seed — create the admin account and a starter catalogue.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an admin user and a sample catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedAdminPassword == "" {
			return fmt.Errorf("--admin-password is required")
		}
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, err := database.Connect(ctx, config.MongoURI())
		if err != nil {
			return err
		}
		defer database.Disconnect(client)

		db := client.Database(config.MongoDB())
		if err := database.EnsureIndexes(ctx, db); err != nil {
			return err
		}

		users := repositories.NewMongoUserRepository(db)
		hash, err := auth.HashPassword(seedAdminPassword)
		if err != nil {
			return err
		}

		admin := &models.User{
			Name:     "Shop Admin",
			Email:    seedAdminEmail,
			Password: hash,
			Role:     models.RoleAdmin,
		}
		switch err := users.Create(ctx, admin); {
		case err == nil:
			fmt.Printf("admin created: %s\n", seedAdminEmail)
		case errors.Is(err, repositories.ErrDuplicateEmail):
			fmt.Printf("admin already exists: %s\n", seedAdminEmail)
		default:
			return err
		}

		sweets := repositories.NewMongoSweetRepository(db)
		existing, err := sweets.Find(ctx, repositories.SweetFilter{})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			fmt.Printf("catalogue already has %d sweets, skipping samples\n", len(existing))
			return nil
		}

		samples := []models.Sweet{
			{Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20},
			{Name: "Gulab Jamun", Category: "Milk-Based", Price: 10, Quantity: 50},
			{Name: "Rasgulla", Category: "Milk-Based", Price: 15, Quantity: 40},
			{Name: "Jalebi", Category: "Fried", Price: 5, Quantity: 100},
			{Name: "Ladoo", Category: "Festival", Price: 8, Quantity: 60},
		}
		for i := range samples {
			if err := sweets.Insert(ctx, &samples[i]); err != nil {
				return err
			}
		}
		fmt.Printf("seeded %d sweets\n", len(samples))
		return nil
	},
}
