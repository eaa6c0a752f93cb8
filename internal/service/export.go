package service

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
	"github.com/anthropics/slack-export-forge/internal/biz/usecase"
)

var dateFilePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.json$`)

// ExportRequest is the full input of one generation run as submitted by
// the wizard or the HTTP caller
type ExportRequest struct {
	OneOnOneDMs  []domain.PairConversation  `json:"oneOnOneDMs"`
	GroupDMs     []domain.GroupConversation `json:"groupDMs"`
	MessageRules domain.GenerationConfig    `json:"messageRules"`
}

// ExportService assembles a full export tree: per-conversation day
// files plus the two metadata files, with the exact-file-count
// invariant enforced before success is declared
type ExportService struct {
	factory *usecase.MessageFactory
	threads *usecase.ThreadEngine
}

// NewExportService creates an export service over the given randomness
// source
func NewExportService(rng *rand.Rand) *ExportService {
	return &ExportService{
		factory: usecase.NewMessageFactory(rng),
		threads: usecase.NewThreadEngine(rng),
	}
}

type dmMetadata struct {
	ID      string   `json:"id"`
	Created int64    `json:"created"`
	Members []string `json:"members"`
}

type topicMetadata struct {
	Value   string `json:"value"`
	Creator string `json:"creator"`
	LastSet int64  `json:"last_set"`
}

type mpimMetadata struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Created    int64         `json:"created"`
	Creator    string        `json:"creator"`
	IsArchived bool          `json:"is_archived"`
	Members    []string      `json:"members"`
	Topic      topicMetadata `json:"topic"`
	Purpose    topicMetadata `json:"purpose"`
}

// Generate runs the engine for every conversation and writes the
// export tree under exportDir. On any error the tree must be treated as
// partial and discarded by the caller.
func (s *ExportService) Generate(req *ExportRequest, exportDir string) error {
	cfg := &req.MessageRules
	if err := cfg.Validate(); err != nil {
		return err
	}

	dates, err := usecase.AllocateDates(cfg.StartDate, cfg.NumberOfDates)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	now := time.Now().Unix()
	if err := s.writeMetadata(req, exportDir, now); err != nil {
		return err
	}

	conversations := make([]domain.Conversation, 0, len(req.OneOnOneDMs)+len(req.GroupDMs))
	for _, dm := range req.OneOnOneDMs {
		conversations = append(conversations, domain.FromPair(dm))
	}
	for _, g := range req.GroupDMs {
		conversations = append(conversations, domain.FromGroup(g))
	}

	for i := range conversations {
		if err := s.generateConversation(&conversations[i], cfg, dates, exportDir); err != nil {
			return err
		}
	}

	log.Printf("[Export] Generated %d conversation folder(s), %d day(s) each", len(conversations), len(dates))
	return nil
}

func (s *ExportService) writeMetadata(req *ExportRequest, exportDir string, now int64) error {
	dms := make([]dmMetadata, 0, len(req.OneOnOneDMs))
	for _, dm := range req.OneOnOneDMs {
		dms = append(dms, dmMetadata{
			ID:      dm.ChannelID,
			Created: now,
			Members: []string{dm.UserID1, dm.UserID2},
		})
	}
	if err := writeJSON(filepath.Join(exportDir, "dms.json"), dms); err != nil {
		return err
	}

	mpims := make([]mpimMetadata, 0, len(req.GroupDMs))
	for _, g := range req.GroupDMs {
		conv := domain.FromGroup(g)
		mpims = append(mpims, mpimMetadata{
			ID:         g.ChannelID,
			Name:       g.GroupName,
			Created:    now,
			Creator:    g.CreatorUserID,
			IsArchived: false,
			Members:    conv.Participants,
			Topic:      topicMetadata{Value: "", Creator: g.CreatorUserID, LastSet: now},
			Purpose:    topicMetadata{Value: "Group Channel From " + g.CreatorUserID, Creator: g.CreatorUserID, LastSet: now},
		})
	}
	return writeJSON(filepath.Join(exportDir, "mpims.json"), mpims)
}

func (s *ExportService) generateConversation(conv *domain.Conversation, cfg *domain.GenerationConfig, dates []domain.AllocatedDate, exportDir string) error {
	dir := filepath.Join(exportDir, conv.DirectoryName())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create conversation directory: %w", err)
	}

	plan := usecase.BuildCoveragePlan(cfg)
	for _, date := range dates {
		msgs, err := s.factory.GenerateDay(conv, cfg, date, plan)
		if err != nil {
			return err
		}
		msgs = s.threads.ApplyThreads(conv, cfg, msgs)
		if err := usecase.ValidateCoverage(date.DateStr, msgs, cfg); err != nil {
			return err
		}
		if msgs == nil {
			msgs = []domain.Message{}
		}
		if err := writeJSON(filepath.Join(dir, date.DateStr+".json"), msgs); err != nil {
			return err
		}
	}

	// Re-count on disk: file creation is controlled only by the
	// allocated date list, never by message timestamps.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read conversation directory: %w", err)
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && dateFilePattern.MatchString(e.Name()) {
			count++
		}
	}
	if count != cfg.NumberOfDates {
		return &domain.FileCountMismatchError{Folder: conv.DirectoryName(), Got: count, Want: cfg.NumberOfDates}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
