package services

import (
	"context"
	"testing"
	"time"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/jackc/pgx/v5"
)

type stubAnnouncementStore struct {
	nextID        int64
	announcements map[int64]*models.Announcement
	lastMessage   string
}

func newStubAnnouncementStore() *stubAnnouncementStore {
	return &stubAnnouncementStore{announcements: map[int64]*models.Announcement{}}
}

func (s *stubAnnouncementStore) Create(_ context.Context, message string) (*models.Announcement, error) {
	s.nextID++
	s.lastMessage = message
	announcement := &models.Announcement{ID: s.nextID, Message: message, CreatedAt: time.Now()}
	s.announcements[announcement.ID] = announcement
	return announcement, nil
}

func (s *stubAnnouncementStore) GetByID(_ context.Context, announcementID int64) (*models.Announcement, error) {
	announcement, ok := s.announcements[announcementID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return announcement, nil
}

func (s *stubAnnouncementStore) List(_ context.Context, _, _ int) ([]models.Announcement, int, error) {
	return nil, len(s.announcements), nil
}

func (s *stubAnnouncementStore) Update(_ context.Context, announcementID int64, message string) (*models.Announcement, error) {
	announcement, ok := s.announcements[announcementID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	announcement.Message = message
	s.lastMessage = message
	return announcement, nil
}

func (s *stubAnnouncementStore) Delete(_ context.Context, announcementID int64) (bool, error) {
	if _, ok := s.announcements[announcementID]; !ok {
		return false, nil
	}
	delete(s.announcements, announcementID)
	return true, nil
}

type recordingPublisher struct {
	events []Event
}

func (p *recordingPublisher) Publish(event Event) {
	p.events = append(p.events, event)
}

func TestAnnouncementServiceCreateTrimsMessage(t *testing.T) {
	store := newStubAnnouncementStore()
	service := &AnnouncementService{announcementRepo: store}

	announcement, err := service.Create(context.Background(), "  Studio closed Friday  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if announcement.Message != "Studio closed Friday" {
		t.Fatalf("expected trimmed message, got %q", announcement.Message)
	}
}

func TestAnnouncementServiceCreateRejectsBlankMessage(t *testing.T) {
	service := &AnnouncementService{announcementRepo: newStubAnnouncementStore()}

	if _, err := service.Create(context.Background(), "   "); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnnouncementServiceUpdateUnknownAnnouncement(t *testing.T) {
	service := &AnnouncementService{announcementRepo: newStubAnnouncementStore()}

	if _, err := service.Update(context.Background(), 42, "New hours"); err != pgx.ErrNoRows {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
}

func TestAnnouncementServiceDeleteUnknownAnnouncement(t *testing.T) {
	service := &AnnouncementService{announcementRepo: newStubAnnouncementStore()}

	if err := service.Delete(context.Background(), 42); err != pgx.ErrNoRows {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
}

func TestAnnouncementServicePublishesMutationEvents(t *testing.T) {
	store := newStubAnnouncementStore()
	publisher := &recordingPublisher{}
	service := &AnnouncementService{announcementRepo: store, events: publisher}

	announcement, err := service.Create(context.Background(), "Pool reopens Monday")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := service.Update(context.Background(), announcement.ID, "Pool reopens Tuesday"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := service.Delete(context.Background(), announcement.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	want := []string{EventAnnouncementCreated, EventAnnouncementUpdated, EventAnnouncementDeleted}
	if len(publisher.events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(publisher.events))
	}
	for i, eventType := range want {
		if publisher.events[i].Type != eventType {
			t.Fatalf("event %d: expected %q, got %q", i, eventType, publisher.events[i].Type)
		}
		if publisher.events[i].EntityID != announcement.ID {
			t.Fatalf("event %d: expected entity %d, got %d", i, announcement.ID, publisher.events[i].EntityID)
		}
	}
}
