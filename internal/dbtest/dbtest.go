// Package dbtest abre um banco SQLite em memória com o schema da aplicação
// para os testes de repositório, casos de uso e handlers.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/interserv/agendamento-api/internal/db"
	"github.com/interserv/agendamento-api/internal/models"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	// uma conexão só: cada conexão nova teria seu próprio banco em memória
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var seq atomic.Int64

// Usuario cria um usuário do tipo informado com senha "segredo123".
func Usuario(t testing.TB, db *gorm.DB, tipo string) *models.Usuario {
	t.Helper()
	n := seq.Add(1)

	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	u := &models.Usuario{
		NomeUsuario: fmt.Sprintf("%s %d", tipo, n),
		Email:       fmt.Sprintf("%s%d@interserv.test", tipo, n),
		SenhaHash:   string(hash),
		Tipo:        tipo,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create usuario: %v", err)
	}
	return u
}

func Contratante(t testing.TB, db *gorm.DB) (*models.Usuario, *models.Contratante) {
	t.Helper()

	u := Usuario(t, db, "contratante")
	c := &models.Contratante{UsuarioID: u.ID}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create contratante: %v", err)
	}
	return u, c
}

func Prestador(t testing.TB, db *gorm.DB) (*models.Usuario, *models.Prestador) {
	t.Helper()

	u := Usuario(t, db, "prestador")
	p := &models.Prestador{UsuarioID: u.ID}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create prestador: %v", err)
	}
	return u, p
}

func TipoServico(t testing.TB, db *gorm.DB, nome string) *models.TipoServico {
	t.Helper()

	tipo := &models.TipoServico{Nome: nome}
	if err := db.Create(tipo).Error; err != nil {
		t.Fatalf("create tipo: %v", err)
	}
	return tipo
}
