package main

import (
	"fmt"

	"go.uber.org/zap"

	"selecao-projetos/internal/auth"
	"selecao-projetos/internal/config"
	"selecao-projetos/internal/convite"
	"selecao-projetos/internal/database"
	"selecao-projetos/internal/edital"
	"selecao-projetos/internal/handlers"
	"selecao-projetos/internal/mailer"
	"selecao-projetos/internal/planilha"
	"selecao-projetos/internal/server"
)

func main() {
	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("configuração inválida", "error", err)
	}

	if err := database.Init(cfg.DBDSN, cfg.Admin, log); err != nil {
		log.Fatalw("falha ao iniciar o banco", "error", err)
	}

	pessoas := database.NewPessoaStore(database.DB)
	editais := database.NewEditalStore(database.DB)
	projetos := database.NewProjetoStore(database.DB)
	convites := database.NewConviteStore(database.DB)

	correio := mailer.NewSMTPMailer(cfg.SMTP)
	sheets := planilha.NewSheetsClient(cfg.Sheets.APIKey)

	authSvc := auth.NewService(pessoas, correio, cfg.SMTP.BaseURL, log)
	editalSvc := edital.NewService(editais, log)
	conviteSvc := convite.NewService(convites, correio, cfg.SMTP.BaseURL, log)

	r := server.NewRouter(cfg, server.Deps{
		Pessoas:  pessoas,
		Auth:     handlers.NewAuthHandler(authSvc),
		Sessao:   handlers.NewSessaoHandler(),
		Gestao:   handlers.NewPessoasHandler(pessoas),
		Convites: handlers.NewConvitesHandler(conviteSvc),
		Editais:  handlers.NewEditaisHandler(editalSvc),
		Projetos: handlers.NewProjetosHandler(projetos, editalSvc, sheets),
	})

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Infow("iniciando o servidor", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalw("erro no servidor", "error", err)
	}
}
