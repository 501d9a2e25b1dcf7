// Package services holds the backend rules that span several tables.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/gestion-commandes/internal/events"
	"github.com/diewo77/gestion-commandes/internal/models"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrUnknownClient    = errors.New("unknown client")
	ErrUnknownProduct   = errors.New("unknown product")
	ErrDuplicateProduct = errors.New("product listed twice")
)

// DocumentService persists orders and pro-formas with their lines. A
// document and its lines are written in one transaction.
type DocumentService struct {
	db     *gorm.DB
	events events.Publisher
}

func NewDocumentService(db *gorm.DB, pub events.Publisher) *DocumentService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &DocumentService{db: db, events: pub}
}

// CreateOrder stores o and its lines, assigning o.ID.
func (s *DocumentService) CreateOrder(ctx context.Context, o *models.Order) error {
	lines := o.Lines
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, o.CodeClient, lineCodes(len(lines), func(i int) string { return lines[i].CodeProduit })); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = o.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	o.Lines = lines
	s.publish(ctx, events.New(events.OrderCreated, o.ID, o.CodeClient, len(lines)))
	return nil
}

// CreateProforma stores p and its lines, assigning p.ID.
func (s *DocumentService) CreateProforma(ctx context.Context, p *models.Proforma) error {
	lines := p.Lines
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, p.CodeClient, lineCodes(len(lines), func(i int) string { return lines[i].CodeProduit })); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].ProformaID = p.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.Lines = lines
	s.publish(ctx, events.New(events.ProformaCreated, p.ID, p.CodeClient, len(lines)))
	return nil
}

// DeleteOrder removes an order and its lines.
func (s *DocumentService) DeleteOrder(ctx context.Context, id int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.New(events.OrderDeleted, id, "", 0))
	return nil
}

// DeleteProforma removes a pro-forma and its lines.
func (s *DocumentService) DeleteProforma(ctx context.Context, id int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proforma_id = ?", id).Delete(&models.ProformaLine{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Proforma{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(ctx, events.New(events.ProformaDeleted, id, "", 0))
	return nil
}

// Lines returns the lines of an order with product designations.
func (s *DocumentService) Lines(ctx context.Context, orderID int) ([]models.OrderLine, error) {
	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	lines := []models.OrderLine{}
	if err := db.Where("order_id = ?", orderID).Order("code_produit").Find(&lines).Error; err != nil {
		return nil, err
	}
	codes := lineCodes(len(lines), func(i int) string { return lines[i].CodeProduit })
	if len(codes) == 0 {
		return lines, nil
	}
	var products []models.Product
	if err := db.Where("code IN ?", codes).Find(&products).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.Code] = p.Designation
	}
	for i := range lines {
		lines[i].Designation = names[lines[i].CodeProduit]
	}
	return lines, nil
}

// AddLine adds a product to an existing order.
func (s *DocumentService) AddLine(ctx context.Context, l *models.OrderLine) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Order{}).Where("id = ?", l.OrderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := checkProducts(tx, []string{l.CodeProduit}); err != nil {
			return err
		}
		if err := tx.Model(&models.OrderLine{}).
			Where("order_id = ? AND code_produit = ?", l.OrderID, l.CodeProduit).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		return tx.Create(l).Error
	})
}

// RemoveLine removes a product from an order.
func (s *DocumentService) RemoveLine(ctx context.Context, orderID int, code string) error {
	res := s.db.WithContext(ctx).
		Where("order_id = ? AND code_produit = ?", orderID, code).
		Delete(&models.OrderLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DocumentService) publish(ctx context.Context, ev events.Event) {
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("publish %s %d: %v", ev.Type, ev.DocumentID, err)
	}
}

func checkReferences(tx *gorm.DB, codeClient string, codes []string) error {
	var count int64
	if err := tx.Model(&models.Client{}).Where("code = ?", codeClient).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownClient, codeClient)
	}
	return checkProducts(tx, codes)
}

func checkProducts(tx *gorm.DB, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		if seen[c] {
			return fmt.Errorf("%w: %s", ErrDuplicateProduct, c)
		}
		seen[c] = true
	}
	var found []string
	if err := tx.Model(&models.Product{}).Where("code IN ?", codes).Pluck("code", &found).Error; err != nil {
		return err
	}
	if len(found) != len(codes) {
		have := make(map[string]bool, len(found))
		for _, c := range found {
			have[c] = true
		}
		for _, c := range codes {
			if !have[c] {
				return fmt.Errorf("%w: %s", ErrUnknownProduct, c)
			}
		}
	}
	return nil
}

func lineCodes(n int, at func(int) string) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, at(i))
	}
	return out
}
