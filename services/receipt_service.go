package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/anjiri1684/stackfit/configs"
	"github.com/anjiri1684/stackfit/database"
	"github.com/anjiri1684/stackfit/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GeneratePaymentReceipt renders a PDF receipt for a completed payment,
// uploads it and stores the URL on the payment row. Runs in a goroutine after
// the payment transaction commits; failures are logged, never surfaced to the
// paying member.
func GeneratePaymentReceipt(payment models.Payment, member models.Member) {
	htmlData, err := generateReceiptHTML(payment, member)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt HTML for payment %s: %v", payment.ID, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for payment %s: %v", payment.ID, err)
		return
	}

	uploadURL, err := uploadReceiptToCloudinary(pdfBytes, payment.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for payment %s: %v", payment.ID, err)
		return
	}

	if err := database.DB.Model(&models.Payment{}).Where("id = ?", payment.ID).Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to save receipt URL for payment %s: %v", payment.ID, err)
		return
	}

	log.Printf("✅ Generated receipt for payment %s", payment.ID)
}

func generateReceiptHTML(payment models.Payment, member models.Member) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	receiptNumber := ""
	if payment.ReceiptNumber != nil {
		receiptNumber = *payment.ReceiptNumber
	}

	data := struct {
		ReceiptNumber string
		MemberName    string
		MemberEmail   string
		Amount        string
		PaymentMethod string
		PaymentType   string
		PaymentDate   string
		IssuedAt      string
	}{
		ReceiptNumber: receiptNumber,
		MemberName:    member.Name,
		MemberEmail:   member.Email,
		Amount:        fmt.Sprintf("%.2f", payment.Amount),
		PaymentMethod: payment.PaymentMethod,
		PaymentType:   payment.PaymentType,
		PaymentDate:   payment.PaymentDate.Format("January 2, 2006"),
		IssuedAt:      time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceiptToCloudinary(fileBytes []byte, paymentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", paymentID, uuid.New().String()),
		Folder:       "stackfit_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
