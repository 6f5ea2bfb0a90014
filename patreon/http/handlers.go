package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/willmadison/patreon-sync-tools/patreon"
	"github.com/willmadison/patreon-sync-tools/patreon/jsonapi"
	"github.com/willmadison/patreon-sync-tools/patreon/sqlite"
)

const (
	SignatureHeader = "X-Patreon-Signature"
	EventHeader     = "X-Patreon-Event"
)

// Store is the part of the cache the handlers need.
type Store interface {
	Save(context.Context, patreon.Entity) error
	List(ctx context.Context, kind patreon.Kind) ([]patreon.Entity, error)
	Delete(ctx context.Context, kind patreon.Kind, id string) error
}

// Sign returns the hex HMAC-MD5 of body keyed with secret, the value
// Patreon sends in X-Patreon-Signature.
func Sign(secret string, body []byte) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func ValidSignature(secret string, body []byte, signature string) bool {
	if secret == "" {
		return false
	}

	given := strings.ToLower(strings.TrimSpace(signature))
	return hmac.Equal([]byte(given), []byte(Sign(secret, body)))
}

// eventKind maps an event such as "members:pledge:create" to the kind of
// its primary resource.
func eventKind(event string) (patreon.Kind, bool) {
	switch {
	case strings.HasPrefix(event, "members:"):
		return patreon.KindMember, true
	case strings.HasPrefix(event, "posts:"):
		return patreon.KindPost, true
	}
	return "", false
}

func WebhookHandler(secret string, store Store) func(*gin.Context) {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "bad request",
				"details": err.Error(),
			})
			return
		}

		if !ValidSignature(secret, body, c.GetHeader(SignatureHeader)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}

		event := c.GetHeader(EventHeader)
		logger := log.WithField("event", event)

		kind, ok := eventKind(event)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported event", "event": event})
			return
		}

		doc, err := jsonapi.Parse(bytes.NewReader(body))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "bad request",
				"details": err.Error(),
			})
			return
		}

		resources, err := doc.Resources()
		if err != nil || len(resources) != 1 || resources[0].Type != kind {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected a single " + string(kind) + " resource"})
			return
		}

		entity, err := patreon.Decode(kind, doc.Flatten(resources[0]))
		if err != nil {
			logger.WithError(err).Warn("rejected webhook payload")
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "invalid " + string(kind),
				"details": err.Error(),
			})
			return
		}

		ctx := c.Request.Context()
		id := patreon.IDOf(entity)

		if strings.HasSuffix(event, ":delete") {
			if err := store.Delete(ctx, kind, id); err != nil && !errors.Is(err, sqlite.ErrNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "internal server error",
					"details": err.Error(),
				})
				return
			}

			logger.WithField("id", id).Info("deleted")
			c.JSON(http.StatusOK, gin.H{"kind": kind, "id": id, "deleted": true})
			return
		}

		if err := store.Save(ctx, entity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal server error",
				"details": err.Error(),
			})
			return
		}

		saveIncluded(ctx, store, doc, logger)

		logger.WithField("id", id).Info("saved")
		c.JSON(http.StatusOK, gin.H{"kind": kind, "id": id})
	}
}

// saveIncluded caches the included resources that decode cleanly. A bad
// included resource never fails the delivery.
func saveIncluded(ctx context.Context, store Store, doc *jsonapi.Document, logger *log.Entry) {
	for _, res := range doc.Included {
		entity, err := patreon.Decode(res.Type, doc.Flatten(res))
		if err != nil {
			logger.WithError(err).WithField("kind", res.Type).WithField("id", res.ID).Debug("skipping included resource")
			continue
		}

		if err := store.Save(ctx, entity); err != nil {
			logger.WithError(err).WithField("kind", res.Type).WithField("id", res.ID).Warn("failed to cache included resource")
		}
	}
}

type MembersOverview struct {
	CampaignID         string           `json:"campaign_id"`
	ActivePatrons      int              `json:"active_patrons"`
	MonthlyPledgeCents int64            `json:"monthly_pledge_cents"`
	Members            []patreon.Member `json:"members"`
}

// MembersHandler lists the cached members of campaignID, ordered by name.
// An empty campaignID lists every cached member.
func MembersHandler(store Store, campaignID string) func(*gin.Context) {
	return func(c *gin.Context) {
		entities, err := store.List(c.Request.Context(), patreon.KindMember)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal server error",
				"details": err.Error(),
			})
			return
		}

		overview := MembersOverview{
			CampaignID: campaignID,
			Members:    []patreon.Member{},
		}

		for _, e := range entities {
			member, ok := e.(*patreon.Member)
			if !ok {
				continue
			}

			if campaignID != "" && member.Campaign.ID() != campaignID {
				continue
			}

			if member.PatronStatus.IsSuccessful() {
				overview.ActivePatrons++
				overview.MonthlyPledgeCents += member.CurrentlyEntitledAmountCents
			}

			overview.Members = append(overview.Members, *member)
		}

		sort.Slice(overview.Members, func(i, j int) bool {
			return overview.Members[i].FullName < overview.Members[j].FullName
		})

		c.JSON(http.StatusOK, overview)
	}
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
