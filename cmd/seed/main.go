package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/accounts"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/auth"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/config"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/db"
)

type seedService struct {
	Title            string
	ShortDescription string
	LongDescription  string
	DisplayOrder     int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	catalog := []seedService{
		{Title: "Tráfego Pago", ShortDescription: "Campanhas que convertem em Google e Meta", LongDescription: "Gestão completa de campanhas de tráfego pago no Google Ads e Meta Ads, com otimização contínua de público, criativo e orçamento para maximizar o retorno.", DisplayOrder: 1},
		{Title: "Produção de Conteúdo", ShortDescription: "Fotos e vídeos com cara de marca grande", LongDescription: "Produção audiovisual profissional para redes sociais e campanhas, da captação à edição final.", DisplayOrder: 2},
		{Title: "Criação de Sites", ShortDescription: "Sites rápidos, bonitos e prontos pra vender", LongDescription: "Desenvolvimento de sites institucionais e landing pages otimizadas para conversão e SEO.", DisplayOrder: 3},
		{Title: "Automação Inteligente", ShortDescription: "Robôs e IA trabalhando pelo seu negócio", LongDescription: "Automação de atendimento, follow-up e processos internos com inteligência artificial.", DisplayOrder: 4},
		{Title: "Consultoria Estratégica", ShortDescription: "Plano claro pra crescer com previsibilidade", LongDescription: "Diagnóstico de marketing e vendas com plano de ação priorizado e acompanhamento mensal.", DisplayOrder: 5},
		{Title: "Lojas Online", ShortDescription: "E-commerce completo do zero ao primeiro pedido", LongDescription: "Implantação de lojas virtuais com catálogo, pagamento e logística integrados.", DisplayOrder: 6},
		{Title: "Gestão de Redes Sociais", ShortDescription: "Presença constante que gera autoridade", LongDescription: "Planejamento editorial, criação de conteúdo e gestão de comunidade nas principais redes.", DisplayOrder: 7},
		{Title: "Criação de Sistemas", ShortDescription: "Software sob medida para sua operação", LongDescription: "Desenvolvimento de sistemas web personalizados, integrados aos processos da empresa.", DisplayOrder: 8},
		{Title: "Identidade Visual", ShortDescription: "Marca memorável do logo ao manual", LongDescription: "Criação de identidade visual completa: logotipo, paleta, tipografia e manual de marca.", DisplayOrder: 9},
	}

	for _, svc := range catalog {
		now := time.Now().In(cfg.Timezone)
		filter := bson.M{"title": svc.Title}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":               primitive.NewObjectID().Hex(),
				"title":             svc.Title,
				"short_description": svc.ShortDescription,
				"long_description":  svc.LongDescription,
				"back_image":        "",
				"front_image":       "",
				"display_order":     svc.DisplayOrder,
				"active":            true,
				"created_at":        now,
				"updated_at":        now,
			},
		}
		if _, err := cols.Services.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for %s: %v", svc.Title, err)
		}
	}

	starterClients := []string{"Engaja Pro", "Studio Mova", "Clínica Vitale"}
	for i, name := range starterClients {
		now := time.Now().In(cfg.Timezone)
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":           primitive.NewObjectID().Hex(),
				"name":          name,
				"logo_url":      "",
				"display_order": i,
				"active":        true,
				"row_position":  1,
				"created_at":    now,
				"updated_at":    now,
			},
		}
		if _, err := cols.Clients.UpdateOne(ctx, bson.M{"name": name}, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for client %s: %v", name, err)
		}
	}

	username := envOrDefault("ADMIN_USER", "admin")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Printf("seed admin: %s skipped, ADMIN_PASSWORD not set", username)
	} else if err := seedAdminUser(ctx, cols, username, os.Getenv("ADMIN_EMAIL"), password, cfg.Timezone); err != nil {
		log.Fatalf("seed admin error for %s: %v", username, err)
	}

	log.Println("seed completed")
}

func seedAdminUser(ctx context.Context, cols *db.Collections, username, email, password string, loc *time.Location) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	set := bson.M{
		"password_hash": hash,
		"role":          accounts.RoleAdmin,
		"updated_at":    now,
	}
	if email != "" {
		set["email"] = email
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"username":   username,
			"created_at": now,
		},
	}
	_, err = cols.Users.UpdateOne(ctx, bson.M{"username": username}, update, options.Update().SetUpsert(true))
	return err
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
