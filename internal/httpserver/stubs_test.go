package httpserver

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
)

type memCustomerRepo struct {
	byID    map[string]*domain.Customer
	byEmail map[string]*domain.Customer
	nextID  int
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{
		byID:    map[string]*domain.Customer{},
		byEmail: map[string]*domain.Customer{},
	}
}

func (r *memCustomerRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if _, ok := r.byEmail[c.Email]; ok {
		return nil, domain.ErrAlreadyExists
	}
	r.nextID++
	c.ID = fmt.Sprintf("c%03d", r.nextID)
	c.CreatedAt = time.Now()
	stored := c
	r.byID[c.ID] = &stored
	r.byEmail[c.Email] = &stored
	return &stored, nil
}

func (r *memCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *memCustomerRepo) SetEmailVerified(_ context.Context, id string, verified bool) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.EmailVerified = verified
	return nil
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (r *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := r.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	t.CreatedAt = time.Now()
	r.tokens[t.Token] = t
	return nil
}

func (r *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *memTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}
