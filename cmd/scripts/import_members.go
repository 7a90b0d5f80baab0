package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Imports a member roster CSV into MongoDB. Expected columns:
// firstName,lastName,email,status,subscription,donationPercent,charityName
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "fairwaydraw"
	}

	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	client, err := mongodb.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := importRoster(client.Database(dbName), csvFilePath); err != nil {
		log.Fatalf("Failed to import roster: %v", err)
	}

	log.Println("Roster imported successfully")
}

func importRoster(db *mongo.Database, csvFilePath string) error {
	file, err := os.Open(csvFilePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse CSV file: %v", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("CSV file is empty or has only a header")
	}

	members := db.Collection("members")
	charities := db.Collection("charities")

	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 5 {
			log.Printf("Warning: record %d has fewer than 5 fields, skipping", i)
			continue
		}

		email := strings.TrimSpace(strings.ToLower(record[2]))
		if email == "" {
			log.Printf("Warning: record %d has no email, skipping", i)
			continue
		}

		donationPercent := 0
		if len(record) > 5 && record[5] != "" {
			donationPercent, err = strconv.Atoi(record[5])
			if err != nil || donationPercent < 0 || donationPercent > 100 {
				log.Printf("Warning: record %d has an invalid donation percent, skipping", i)
				continue
			}
		}

		var charityID primitive.ObjectID
		if len(record) > 6 && record[6] != "" {
			charityID, err = resolveCharity(charities, strings.TrimSpace(record[6]))
			if err != nil {
				log.Printf("Warning: failed to resolve charity for record %d: %v", i, err)
				continue
			}
		}

		now := time.Now()
		update := bson.M{
			"$set": bson.M{
				"firstName":       strings.TrimSpace(record[0]),
				"lastName":        strings.TrimSpace(record[1]),
				"status":          models.MemberStatus(strings.ToUpper(record[3])),
				"subscription":    models.SubscriptionStatus(strings.ToUpper(record[4])),
				"donationPercent": donationPercent,
				"charityId":       charityID,
				"updatedAt":       now,
			},
			"$setOnInsert": bson.M{
				"email":     email,
				"createdAt": now,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := members.UpdateOne(context.Background(), bson.M{"email": email}, update, opts); err != nil {
			log.Printf("Warning: failed to upsert member for record %d: %v", i, err)
		}
	}

	return nil
}

// resolveCharity finds a charity by name, creating it if absent.
func resolveCharity(charities *mongo.Collection, name string) (primitive.ObjectID, error) {
	var charity models.Charity
	err := charities.FindOne(context.Background(), bson.M{"name": name}).Decode(&charity)
	if err == nil {
		return charity.ID, nil
	}
	if err != mongo.ErrNoDocuments {
		return primitive.NilObjectID, err
	}

	now := time.Now()
	res, err := charities.InsertOne(context.Background(), models.Charity{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}
