package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"selecao-projetos/internal/config"
	"selecao-projetos/internal/models"
)

var DB *gorm.DB

func Init(dsn string, admin config.Admin, log *zap.SugaredLogger) error {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Infow("connecting to db", "attempt", i, "max", maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Info("connected to db")
			break
		}

		log.Warnw("failed to connect to db", "error", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to db after %d attempts: %w", maxAttempts, err)
	}

	err = DB.AutoMigrate(
		&models.Pessoa{},
		&models.AtribuicaoEstagio{},
		&models.Edital{},
		&models.Estagio{},
		&models.Pergunta{},
		&models.Projeto{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	return seedAdmin(admin, log)
}

// seedAdmin garante um administrador ativo na primeira subida.
func seedAdmin(admin config.Admin, log *zap.SugaredLogger) error {
	var count int64
	if err := DB.Model(&models.Pessoa{}).
		Where("tipo_usuario = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Senha), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	p := models.Pessoa{
		NomeCompleto: "Administrador",
		Email:        admin.Email,
		TipoUsuario:  models.RoleAdmin,
		Status:       models.StatusAtivo,
		Senha:        string(hash),
	}
	if err := DB.Create(&p).Error; err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	log.Infow("created default admin user", "email", admin.Email)
	return nil
}
