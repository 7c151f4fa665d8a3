package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	config "github.com/greenroots/donation-tracker-go/config"
	models "github.com/greenroots/donation-tracker-go/models"
	store "github.com/greenroots/donation-tracker-go/store"
	utils "github.com/greenroots/donation-tracker-go/utils"
)

// MaxProofSize caps receipt uploads at 5MB.
const MaxProofSize = 5 << 20

// formValue normalizes a multipart field that may arrive as a scalar or
// as a repeated value, returning the first non-empty entry.
func formValue(c *gin.Context, key string) string {
	for _, v := range c.PostFormArray(key) {
		if v != "" {
			return v
		}
	}
	return ""
}

// ---------------- CREATE ----------------
func CreateDonation(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Validate form data ---
		qtyRaw := formValue(c, "quantity")
		if qtyRaw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
			return
		}
		qty, err := strconv.Atoi(qtyRaw)
		if err != nil || qty <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive integer"})
			return
		}

		name := formValue(c, "donorName")
		if name == "" {
			name = "Anonymous Donor"
		}

		fileHeader, err := c.FormFile("proof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a payment receipt upload is required"})
			return
		}
		if fileHeader.Size > MaxProofSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receipt exceeds the 5MB limit"})
			return
		}
		contentType := fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receipt must be an image"})
			return
		}

		// --- Current price; defaults apply until settings exist ---
		campaign, err := cfg.Campaign.Get(c.Request.Context())
		if errors.Is(err, store.ErrNotFound) {
			campaign = models.DefaultCampaign()
		} else if err != nil {
			log.Printf("Fetch campaign settings failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create donation"})
			return
		}
		if campaign.TreePrice <= 0 {
			// settings row saved without a price yet
			campaign.TreePrice = models.DefaultTreePrice
		}

		// --- Upload proof first; the record must never point at a
		// missing receipt, so the insert only happens after this ---
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open receipt"})
			return
		}
		defer file.Close()

		// the donation id in the object name keeps concurrent uploads of
		// identically named receipts from colliding
		donationID := store.NewDonationID()
		proofName := fmt.Sprintf("proof_%d_%s_%s", time.Now().UnixMilli(), donationID, filepath.Base(fileHeader.Filename))
		proofURL, err := cfg.Files.Upload(c.Request.Context(), utils.ProofFolder, proofName, file, contentType, false)
		if err != nil {
			log.Printf("Receipt upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "receipt upload failed"})
			return
		}

		// --- Insert donation; amount is frozen at today's price ---
		now := time.Now()
		donation := models.Donation{
			ID:           donationID,
			DonorName:    name,
			TreeQuantity: qty,
			Amount:       qty * campaign.TreePrice,
			ProofURL:     proofURL,
			Status:       models.StatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := cfg.Donations.Insert(c.Request.Context(), donation); err != nil {
			log.Printf("Insert donation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create donation"})
			return
		}

		cfg.CampaignCache.Invalidate()

		c.JSON(http.StatusCreated, gin.H{
			"message": "Donation submitted successfully!",
			"impact":  utils.ImpactMessage(c.Request.Context(), qty),
			"data":    donation,
		})
	}
}

// ---------------- LIST ----------------
func ListDonations(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		donations, err := cfg.Donations.List(c.Request.Context())
		if err != nil {
			log.Printf("Fetch donations failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch donations"})
			return
		}

		if len(donations) == 0 {
			c.JSON(http.StatusOK, []models.Donation{})
			return
		}

		// --- Pick the most recently updated donation ---
		latest := donations[0]
		for _, d := range donations {
			if d.UpdatedAt.After(latest.UpdatedAt) {
				latest = d
			}
		}

		// --- Generate ETag from latest donation; a 304 carries the same
		// validator headers as the 200 would ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}

		c.JSON(http.StatusOK, donations)
	}
}

// ---------------- UPDATE STATUS ----------------
func UpdateDonation(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ID     string `json:"id" binding:"required"`
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing id or status"})
			return
		}

		if !models.ValidReviewStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be APPROVED or REJECTED"})
			return
		}

		err := cfg.Donations.SetStatus(c.Request.Context(), input.ID, input.Status)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
			return
		}
		if err != nil {
			log.Printf("Update donation status failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update donation"})
			return
		}

		cfg.CampaignCache.Invalidate()

		c.JSON(http.StatusOK, gin.H{"message": "Donation status updated successfully!", "id": input.ID})
	}
}
