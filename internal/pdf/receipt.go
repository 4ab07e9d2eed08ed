package pdf

import (
	"bytes"
	"fmt"

	"school/internal/entity"

	"github.com/go-pdf/fpdf"
)

// PaymentReceipt renders a one-page payment proof for a student.
func PaymentReceipt(student *entity.DbUser, payment *entity.DbPayment) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "", 15)

	line := func(text string) {
		doc.CellFormat(0, 10, text, "", 1, "C", false, 0, "")
	}

	line("**** Payment proof ****")
	line(fmt.Sprintf("- Student Id : %d", student.ID))
	line(fmt.Sprintf("- Student Name : %s", student.DisplayName))
	line(fmt.Sprintf("- Student Year : %d", student.Year))
	line(fmt.Sprintf("- Student Registration : %s", student.Registration))
	line("---------------------------------")
	line(fmt.Sprintf("Payment Date : %s", payment.PaidOn.Format("2006-01-02")))
	line(fmt.Sprintf("Payment Amount : %.2f", payment.Amount))
	line(fmt.Sprintf("Payment Status : %s", payment.Status))
	line(fmt.Sprintf("Payment Type : %s", payment.Type))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
