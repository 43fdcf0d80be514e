package utils

import "testing"

func TestSlugifyFoldsAccents(t *testing.T) {
	got := Slugify("Tráfego Pago")
	if got != "trafego-pago" {
		t.Fatalf("expected trafego-pago, got %q", got)
	}
}

func TestSlugifyCollapsesSeparators(t *testing.T) {
	got := Slugify("Criação de Sites & Sistemas / Web")
	if got != "criacao-de-sites-and-sistemas-web" {
		t.Fatalf("unexpected slug: %q", got)
	}
}
