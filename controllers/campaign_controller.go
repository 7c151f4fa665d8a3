package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	config "github.com/greenroots/donation-tracker-go/config"
	models "github.com/greenroots/donation-tracker-go/models"
	stats "github.com/greenroots/donation-tracker-go/stats"
	store "github.com/greenroots/donation-tracker-go/store"
	utils "github.com/greenroots/donation-tracker-go/utils"
)

const qrPublicName = "qr_code"

// ---------------- CAMPAIGN DATA ----------------
// The landing-page read: settings, stats derived from the full donation
// list, and the donor wall. Served from the snapshot cache inside its
// TTL; every mutation path invalidates it.
func GetCampaignData(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "s-maxage=10, stale-while-revalidate")

		if data, ok := cfg.CampaignCache.Get(); ok {
			c.JSON(http.StatusOK, data)
			return
		}

		campaign, err := cfg.Campaign.Get(c.Request.Context())
		if errors.Is(err, store.ErrNotFound) {
			campaign = models.DefaultCampaign()
		} else if err != nil {
			log.Printf("Fetch campaign settings failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch campaign data"})
			return
		}

		donations, err := cfg.Donations.List(c.Request.Context())
		if err != nil {
			log.Printf("Fetch donations failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch campaign data"})
			return
		}

		derived := stats.Compute(donations, campaign.GoalTrees)
		// trees_approved is derived, never trusted from storage
		campaign.TreesApproved = derived.TotalTrees

		data := models.CampaignData{
			Campaign:     campaign,
			Stats:        derived,
			RecentDonors: stats.RecentDonors(donations, stats.DefaultRecentLimit),
		}

		cfg.CampaignCache.Set(data)
		c.JSON(http.StatusOK, data)
	}
}

// ---------------- UPDATE SETTINGS ----------------
func UpdateSettings(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Bind form fields; absent fields leave settings untouched ---
		var patch models.CampaignPatch

		if title := formValue(c, "title"); title != "" {
			patch.Title = &title
		}
		if description := formValue(c, "description"); description != "" {
			patch.Description = &description
		}
		if raw := formValue(c, "goal_trees"); raw != "" {
			goal, err := strconv.Atoi(raw)
			if err != nil || goal < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "goal_trees must be a non-negative integer"})
				return
			}
			patch.GoalTrees = &goal
		}
		if raw := formValue(c, "tree_price"); raw != "" {
			price, err := strconv.Atoi(raw)
			if err != nil || price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "tree_price must be a positive integer"})
				return
			}
			patch.TreePrice = &price
		}

		// --- New QR image is uploaded before the settings write so the
		// stored URL always points at an existing object. A fixed public
		// name keeps the URL stable across updates ---
		if fileHeader, err := c.FormFile("qr_code"); err == nil {
			if fileHeader.Size > MaxProofSize {
				c.JSON(http.StatusBadRequest, gin.H{"error": "QR image exceeds the 5MB limit"})
				return
			}
			contentType := fileHeader.Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "image/") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "QR code must be an image"})
				return
			}

			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open QR image"})
				return
			}
			defer file.Close()

			existing, err := cfg.Campaign.Get(c.Request.Context())
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				log.Printf("Fetch campaign settings failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update settings"})
				return
			}

			qrURL, err := cfg.Files.Upload(c.Request.Context(), utils.CampaignFolder, qrPublicName, file, contentType, true)
			if err != nil {
				log.Printf("QR upload failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "QR upload failed"})
				return
			}
			patch.QRImageURL = &qrURL

			// A QR stored under the fixed name was just overwritten in
			// place; one stored under a legacy name is now orphaned and
			// gets removed. Best effort only.
			fixedID := utils.CampaignFolder + "/" + qrPublicName
			if old := existing.QRImageURL; old != "" && old != qrURL && !strings.Contains(old, fixedID) {
				if err := cfg.Files.Delete(c.Request.Context(), old); err != nil {
					log.Printf("Delete replaced QR failed: %v", err)
				}
			}
		}

		if err := cfg.Campaign.Upsert(c.Request.Context(), patch); err != nil {
			log.Printf("Upsert campaign settings failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update settings"})
			return
		}

		cfg.CampaignCache.Invalidate()

		c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully!"})
	}
}
