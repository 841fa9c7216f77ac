package service

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/clarifyai-api/internal/auth"
	"github.com/noah-isme/clarifyai-api/internal/models"
	"github.com/noah-isme/clarifyai-api/internal/repository"
	"github.com/noah-isme/clarifyai-api/internal/utils"
	"github.com/noah-isme/clarifyai-api/pkg/events"
)

var (
	owner    = auth.Identity{ID: "user-a", Email: "a@campus.edu"}
	stranger = auth.Identity{ID: "user-b", Email: "b@campus.edu"}
	validate = utils.NewValidator()
)

func strPtr(value string) *string { return &value }
func boolPtr(value bool) *bool    { return &value }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}
	return types
}

type faqRepoStub struct {
	items        map[string]models.FAQ
	listErr      error
	incrementErr error
	lastFilter   repository.FAQFilter
	lastFields   map[string]interface{}
	updateCalls  int
	deleted      []string
}

func newFAQRepoStub(items ...models.FAQ) *faqRepoStub {
	stub := &faqRepoStub{items: make(map[string]models.FAQ)}
	for _, item := range items {
		stub.items[item.ID] = item
	}
	return stub
}

func (s *faqRepoStub) List(_ context.Context, filter repository.FAQFilter) ([]models.FAQ, error) {
	s.lastFilter = filter
	if s.listErr != nil {
		return nil, s.listErr
	}
	items := make([]models.FAQ, 0, len(s.items))
	for _, item := range s.items {
		if item.IsActive {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *faqRepoStub) GetByID(_ context.Context, id string) (models.FAQ, error) {
	item, ok := s.items[id]
	if !ok {
		return models.FAQ{}, repository.ErrNotFound
	}
	return item, nil
}

func (s *faqRepoStub) Create(_ context.Context, faq *models.FAQ, ownerID string) error {
	faq.ID = "faq-new"
	faq.CreatedBy = &ownerID
	faq.CreatedAt = time.Unix(0, 0).UTC()
	faq.UpdatedAt = faq.CreatedAt
	s.items[faq.ID] = *faq
	return nil
}

func (s *faqRepoStub) Update(_ context.Context, id string, fields map[string]interface{}) (models.FAQ, error) {
	s.updateCalls++
	s.lastFields = fields
	item := s.items[id]
	if answer, ok := fields["answer"].(string); ok {
		item.Answer = answer
	}
	s.items[id] = item
	return item, nil
}

func (s *faqRepoStub) SoftDelete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *faqRepoStub) IncrementViews(_ context.Context, id string) error {
	if s.incrementErr != nil {
		return s.incrementErr
	}
	item := s.items[id]
	item.ViewCount++
	s.items[id] = item
	return nil
}

type announcementRepoStub struct {
	items      []models.Announcement
	listErr    error
	listCalls  int
	lastFilter repository.AnnouncementFilter
	created    *models.Announcement
	lastFields map[string]interface{}
}

func (s *announcementRepoStub) List(_ context.Context, filter repository.AnnouncementFilter) ([]models.Announcement, error) {
	s.listCalls++
	s.lastFilter = filter
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.items, nil
}

func (s *announcementRepoStub) GetByID(_ context.Context, id string) (models.Announcement, error) {
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Announcement{}, repository.ErrNotFound
}

func (s *announcementRepoStub) Create(_ context.Context, item *models.Announcement, ownerID string) error {
	item.ID = "announcement-new"
	item.CreatedBy = &ownerID
	item.IsActive = true
	copied := *item
	s.created = &copied
	s.items = append(s.items, copied)
	return nil
}

func (s *announcementRepoStub) Update(_ context.Context, id string, fields map[string]interface{}) (models.Announcement, error) {
	s.lastFields = fields
	return s.GetByID(context.Background(), id)
}

func (s *announcementRepoStub) SoftDelete(_ context.Context, id string) error {
	return nil
}

type chatLogRepoStub struct {
	logs        []models.ChatLog
	listErr     error
	lastLimit   int
	feedbackIDs []string
}

func (s *chatLogRepoStub) Create(_ context.Context, log *models.ChatLog) error {
	log.ID = "log-new"
	log.CreatedAt = time.Unix(0, 0).UTC()
	s.logs = append(s.logs, *log)
	return nil
}

func (s *chatLogRepoStub) ListByUser(_ context.Context, userID string, limit int) ([]models.ChatLog, error) {
	s.lastLimit = limit
	if s.listErr != nil {
		return nil, s.listErr
	}
	items := make([]models.ChatLog, 0)
	for _, log := range s.logs {
		if log.UserID == userID {
			items = append(items, log)
		}
	}
	return items, nil
}

func (s *chatLogRepoStub) SetFeedback(_ context.Context, id string, helpful bool) (models.ChatLog, error) {
	s.feedbackIDs = append(s.feedbackIDs, id)
	for i := range s.logs {
		if s.logs[i].ID == id {
			s.logs[i].WasHelpful = &helpful
			return s.logs[i], nil
		}
	}
	return models.ChatLog{}, repository.ErrNotFound
}
