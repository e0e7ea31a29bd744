package email

import "html/template"

var invoiceTmpl = template.Must(template.New("invoice").Parse(`
<div style="max-width: 600px; margin: 0 auto; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif;">
  <div style="background: linear-gradient(135deg, #059669, #0d9488); padding: 32px; border-radius: 12px 12px 0 0;">
    <h1 style="margin: 0; color: white; font-size: 24px; font-weight: 700;">{{.ClinicName}}</h1>
    <p style="margin: 8px 0 0; color: rgba(255,255,255,0.8); font-size: 14px;">Invoice {{.Reference}}</p>
  </div>

  <div style="background: #ffffff; padding: 32px; border: 1px solid #e5e7eb; border-top: none;">
    <p style="margin: 0 0 24px; font-size: 16px; color: #333;">Hi {{.OwnerName}},</p>
    <p style="margin: 0 0 24px; font-size: 14px; color: #666; line-height: 1.6;">
      Please find your invoice details below. If you have any questions, don't hesitate to reach out.
    </p>

    <div style="background: #f9fafb; border-radius: 8px; padding: 16px; margin-bottom: 24px;">
      <table style="width: 100%;">
        <tr>
          <td style="font-size: 12px; color: #999; text-transform: uppercase;">Invoice #</td>
          <td style="font-size: 14px; color: #333; font-weight: 600; text-align: right;">{{.Reference}}</td>
        </tr>
        <tr>
          <td style="font-size: 12px; color: #999; text-transform: uppercase; padding-top: 8px;">Issue Date</td>
          <td style="font-size: 14px; color: #333; text-align: right; padding-top: 8px;">{{.IssueDate}}</td>
        </tr>
        {{if .DueDate}}
        <tr>
          <td style="font-size: 12px; color: #999; text-transform: uppercase; padding-top: 8px;">Due Date</td>
          <td style="font-size: 14px; color: #333; text-align: right; padding-top: 8px;">{{.DueDate}}</td>
        </tr>
        {{end}}
        <tr>
          <td style="font-size: 12px; color: #999; text-transform: uppercase; padding-top: 8px;">Status</td>
          <td style="font-size: 14px; color: #333; text-align: right; padding-top: 8px; text-transform: capitalize;">{{.Status}}</td>
        </tr>
      </table>
    </div>

    <table style="width: 100%; border-collapse: collapse; margin-bottom: 24px;">
      <thead>
        <tr>
          <th style="text-align: left; padding: 10px 0; border-bottom: 2px solid #e5e7eb; font-size: 11px; color: #999; text-transform: uppercase;">Description</th>
          <th style="text-align: center; padding: 10px 0; border-bottom: 2px solid #e5e7eb; font-size: 11px; color: #999; text-transform: uppercase;">Qty</th>
          <th style="text-align: right; padding: 10px 0; border-bottom: 2px solid #e5e7eb; font-size: 11px; color: #999; text-transform: uppercase;">Unit Price</th>
          <th style="text-align: right; padding: 10px 0; border-bottom: 2px solid #e5e7eb; font-size: 11px; color: #999; text-transform: uppercase;">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lines}}
        <tr>
          <td style="padding: 10px 0; border-bottom: 1px solid #f0f0f0; font-size: 14px; color: #333;">{{.Description}}</td>
          <td style="padding: 10px 0; border-bottom: 1px solid #f0f0f0; font-size: 14px; color: #666; text-align: center;">{{.Quantity}}</td>
          <td style="padding: 10px 0; border-bottom: 1px solid #f0f0f0; font-size: 14px; color: #666; text-align: right;">{{.UnitPrice}}</td>
          <td style="padding: 10px 0; border-bottom: 1px solid #f0f0f0; font-size: 14px; color: #333; text-align: right; font-weight: 600;">{{.Amount}}</td>
        </tr>
        {{else}}
        <tr><td colspan="4" style="padding: 20px 0; text-align: center; color: #999; font-size: 14px;">No line items</td></tr>
        {{end}}
      </tbody>
    </table>

    <div style="text-align: right; padding: 16px 0; border-top: 2px solid #111;">
      <span style="font-size: 18px; font-weight: 700; color: #111;">Total: {{.Total}}</span>
    </div>

    {{if .Notes}}
    <div style="margin-top: 24px; padding-top: 16px; border-top: 1px solid #e5e7eb;">
      <p style="font-size: 12px; color: #999; text-transform: uppercase; margin: 0 0 8px;">Notes</p>
      <p style="font-size: 14px; color: #666; margin: 0; line-height: 1.5;">{{.Notes}}</p>
    </div>
    {{end}}
  </div>

  <div style="background: #f9fafb; padding: 24px 32px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 12px 12px; text-align: center;">
    <p style="margin: 0; font-size: 12px; color: #999;">Thank you for choosing {{.ClinicName}}!</p>
    {{if .ClinicPhone}}<p style="margin: 4px 0 0; font-size: 12px; color: #999;">{{.ClinicPhone}}</p>{{end}}
    {{if .ClinicEmail}}<p style="margin: 4px 0 0; font-size: 12px; color: #999;">{{.ClinicEmail}}</p>{{end}}
  </div>
</div>`))
