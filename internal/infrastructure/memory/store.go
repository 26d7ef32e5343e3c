// Package memory implementa los repositorios sobre un almacén en memoria.
// Sirve el modo demo (STORE_DRIVER=memory) y los tests de los casos de uso.
// Un único mutex serializa todo; el TxRunner toma un snapshot del estado y
// lo restaura si el callback falla, imitando el rollback de PostgreSQL.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// Store es el estado compartido por todos los adaptadores.
type Store struct {
	mu sync.Mutex

	ingredients map[string]*entity.Ingredient
	stocks      map[string]*entity.StockRecord // clave ingredientID|locationKey
	txns        []*entity.StockTransaction
	receipts    map[string]*entity.ImportReceipt
	branches    map[string]*entity.Branch
	suppliers   map[string]*entity.Supplier
	users       map[string]*entity.User
}

// NewStore crea el almacén vacío.
func NewStore() *Store {
	return &Store{
		ingredients: make(map[string]*entity.Ingredient),
		stocks:      make(map[string]*entity.StockRecord),
		receipts:    make(map[string]*entity.ImportReceipt),
		branches:    make(map[string]*entity.Branch),
		suppliers:   make(map[string]*entity.Supplier),
		users:       make(map[string]*entity.User),
	}
}

func stockKey(ingredientID string, loc entity.Location) string {
	return ingredientID + "|" + loc.Key()
}

// snapshot clona el estado completo para el rollback del TxRunner. Los
// valores se copian; las entidades no se mutan in place en los adaptadores.
func (s *Store) snapshot() *Store {
	snap := NewStore()
	for k, v := range s.ingredients {
		c := *v
		snap.ingredients[k] = &c
	}
	for k, v := range s.stocks {
		c := *v
		snap.stocks[k] = &c
	}
	snap.txns = make([]*entity.StockTransaction, len(s.txns))
	copy(snap.txns, s.txns)
	for k, v := range s.receipts {
		c := *v
		c.Items = append([]entity.ReceiptItem(nil), v.Items...)
		snap.receipts[k] = &c
	}
	for k, v := range s.branches {
		c := *v
		snap.branches[k] = &c
	}
	for k, v := range s.suppliers {
		c := *v
		snap.suppliers[k] = &c
	}
	for k, v := range s.users {
		c := *v
		snap.users[k] = &c
	}
	return snap
}

// restore reemplaza el estado por el snapshot.
func (s *Store) restore(snap *Store) {
	s.ingredients = snap.ingredients
	s.stocks = snap.stocks
	s.txns = snap.txns
	s.receipts = snap.receipts
	s.branches = snap.branches
	s.suppliers = snap.suppliers
	s.users = snap.users
}

// sortedKeys itera mapas en orden estable para listados deterministas.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func hasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}
