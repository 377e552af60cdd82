package handler_test

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/repository"
)

// In-memory stores backing the handler tests.

type fakeTraderStore struct {
	traders map[uuid.UUID]*models.Trader
}

func newFakeTraderStore(traders ...*models.Trader) *fakeTraderStore {
	s := &fakeTraderStore{traders: make(map[uuid.UUID]*models.Trader)}
	for _, t := range traders {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		s.traders[t.ID] = t
	}
	return s
}

func (s *fakeTraderStore) List(f *repository.TraderFilter) (*repository.TraderPage, error) {
	page := &repository.TraderPage{Page: f.Page, Limit: f.Limit, TotalPages: 1}
	for _, t := range s.traders {
		page.Traders = append(page.Traders, *t)
	}
	page.TotalItems = len(page.Traders)
	return page, nil
}

func (s *fakeTraderStore) GetByID(id uuid.UUID) (*models.Trader, error) {
	t, ok := s.traders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return t, nil
}

func (s *fakeTraderStore) GetByCode(code string) (*models.Trader, error) {
	for _, t := range s.traders {
		if t.TraderCode == code {
			return t, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeTraderStore) GetByEmail(email string) (*models.Trader, error) {
	for _, t := range s.traders {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeTraderStore) Create(t *models.Trader) error {
	t.ID = uuid.New()
	s.traders[t.ID] = t
	return nil
}

func (s *fakeTraderStore) Update(t *models.Trader) error {
	s.traders[t.ID] = t
	return nil
}

func (s *fakeTraderStore) DeleteByIDs(ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := s.traders[id]; ok {
			delete(s.traders, id)
			n++
		}
	}
	return n, nil
}

type fakeProductStore struct {
	products map[uuid.UUID]*models.Product
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[uuid.UUID]*models.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) List() ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeProductStore) GetByID(id uuid.UUID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (s *fakeProductStore) Create(p *models.Product) error {
	p.ID = uuid.New()
	s.products[p.ID] = p
	return nil
}

func (s *fakeProductStore) Update(p *models.Product) error {
	s.products[p.ID] = p
	return nil
}

func (s *fakeProductStore) Delete(id uuid.UUID) (int64, error) {
	if _, ok := s.products[id]; !ok {
		return 0, nil
	}
	delete(s.products, id)
	return 1, nil
}

type fakeCardStore struct {
	cards map[uuid.UUID]*models.ScratchCard
}

func newFakeCardStore(cards ...*models.ScratchCard) *fakeCardStore {
	s := &fakeCardStore{cards: make(map[uuid.UUID]*models.ScratchCard)}
	for _, c := range cards {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		s.cards[c.ID] = c
	}
	return s
}

func (s *fakeCardStore) GetByID(id uuid.UUID) (*models.ScratchCard, error) {
	c, ok := s.cards[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (s *fakeCardStore) FindPending(traderID, productID uuid.UUID) (*models.ScratchCard, error) {
	for _, c := range s.cards {
		if c.TraderID == traderID && c.ProductID == productID && c.Status == models.CardPending {
			return c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeCardStore) Create(c *models.ScratchCard) error {
	c.ID = uuid.New()
	s.cards[c.ID] = c
	return nil
}

func (s *fakeCardStore) List(f *repository.CardFilter) (*repository.CardPage, error) {
	page := &repository.CardPage{Page: f.Page, Limit: f.Limit, TotalPages: 1}
	for _, c := range s.cards {
		page.Cards = append(page.Cards, *c)
	}
	page.TotalItems = len(page.Cards)
	return page, nil
}

func (s *fakeCardStore) PendingForTrader(traderID uuid.UUID, mega *bool) ([]models.ScratchCard, error) {
	var out []models.ScratchCard
	for _, c := range s.cards {
		if c.TraderID != traderID || c.Status != models.CardPending {
			continue
		}
		if mega != nil && c.IsMega != *mega {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCardStore) Redeem(id uuid.UUID) (bool, error) {
	c, ok := s.cards[id]
	if !ok || c.Status != models.CardPending {
		return false, nil
	}
	c.Status = models.CardRedeemed
	return true, nil
}

func (s *fakeCardStore) RedeemMany(ids []uuid.UUID) ([]models.ScratchCard, error) {
	var out []models.ScratchCard
	for _, id := range ids {
		c, ok := s.cards[id]
		if !ok || c.Status != models.CardPending {
			continue
		}
		c.Status = models.CardRedeemed
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCardStore) Delete(id uuid.UUID) (int64, error) {
	if _, ok := s.cards[id]; !ok {
		return 0, nil
	}
	delete(s.cards, id)
	return 1, nil
}

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *fakeUserStore) GetByLogin(login string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeUserStore) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Create(u *models.User) error {
	u.ID = uuid.New()
	s.users[u.ID] = u
	return nil
}
