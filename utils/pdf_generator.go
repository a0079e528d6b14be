package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/opikzxx/ad-catering/models"
	"github.com/opikzxx/ad-catering/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type catalogPDFData struct {
	BusinessName string
	Generated    string
	Categories   []*models.CategoryWithMenus
}

// GenerateCatalogPDF renders the published catalogue to an A4 PDF via
// headless Chrome. Returns nil bytes when nothing is published.
func GenerateCatalogPDF(repo *repository.CatalogRepository, businessName string) ([]byte, error) {
	catalog, err := repo.GetCatalogForPDF()
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, nil
	}

	tmpl, err := template.ParseFiles("templates/catalog_template.html")
	if err != nil {
		return nil, err
	}

	data := catalogPDFData{
		BusinessName: businessName,
		Generated:    time.Now().Format("02-Jan-2006"),
		Categories:   catalog,
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		.category-block {
			page-break-inside: avoid;
			border: none;
		}
		</style>
		</head>
		<body>` + body.String() + `</body></html>`

	// Create temp HTML file
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "catalog_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	// Generate PDF with headless Chrome
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
