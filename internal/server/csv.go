package server

import (
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	recoverydomain "github.com/zerorisk/claimledger/internal/recovery/domain"
)

func writeCSV(c *gin.Context, filename string, data interface{}) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	switch v := data.(type) {
	case *recoverydomain.ListBillsResponse:
		_ = writer.Write([]string{
			"Patient", "Claim ID", "Payer", "Status", "Aging Bucket",
			"Bill Amount", "Received Amount", "Deduction", "Submitted",
			"Expected Payment", "Received", "Overdue Days",
		})
		for _, bill := range v.Bills {
			_ = writer.Write([]string{
				bill.PatientName,
				stringOrEmpty(bill.ClaimID),
				bill.PayerType,
				string(bill.Status),
				string(bill.AgingBucket),
				fmt.Sprintf("%d", bill.BillAmount),
				amountOrEmpty(bill.ReceivedAmount),
				amountOrEmpty(bill.DeductionAmount),
				dateOrEmpty(bill.DateOfSubmission),
				dateOrEmpty(bill.ExpectedPaymentDate),
				dateOrEmpty(bill.ReceivedDate),
				fmt.Sprintf("%d", bill.OverdueDays),
			})
		}
	case *recoverydomain.PayerSummariesResponse:
		_ = writer.Write([]string{
			"Payer", "Total Bills", "Total Amount", "Pending Count",
			"Received Count", "Pending Amount", "Received Amount",
			"Patients", "NMI Count",
		})
		for _, payer := range v.Payers {
			_ = writer.Write([]string{
				payer.PayerType,
				fmt.Sprintf("%d", payer.TotalBills),
				fmt.Sprintf("%d", payer.TotalAmount),
				fmt.Sprintf("%d", payer.PendingCount),
				fmt.Sprintf("%d", payer.ReceivedCount),
				fmt.Sprintf("%d", payer.PendingAmount),
				fmt.Sprintf("%d", payer.ReceivedAmount),
				fmt.Sprintf("%d", payer.PatientCount),
				fmt.Sprintf("%d", payer.NMICount),
			})
		}
	case *recoverydomain.SummaryResponse:
		summary := v.Summary
		_ = writer.Write([]string{"Metric", "Value"})
		_ = writer.Write([]string{"Total Bills", fmt.Sprintf("%d", summary.TotalBills)})
		_ = writer.Write([]string{"Total Amount", fmt.Sprintf("%d", summary.TotalAmount)})
		_ = writer.Write([]string{"Pending Bills", fmt.Sprintf("%d", summary.PendingBills)})
		_ = writer.Write([]string{"Pending Amount", fmt.Sprintf("%d", summary.PendingAmount)})
		_ = writer.Write([]string{"Received Bills", fmt.Sprintf("%d", summary.ReceivedBills)})
		_ = writer.Write([]string{"Received Amount", fmt.Sprintf("%d", summary.ReceivedAmount)})
		_ = writer.Write([]string{"Deduction Amount", fmt.Sprintf("%d", summary.DeductionAmount)})
		_ = writer.Write([]string{"NMI Count", fmt.Sprintf("%d", summary.NMICount)})
	default:
		// Unknown types export an empty file rather than failing the request.
	}
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func amountOrEmpty(value *int64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%d", *value)
}

func dateOrEmpty(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format("2006-01-02")
}
