package notification

const layoutHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Brand}}</title>
  <style>
    body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #f9f9f9; margin: 0; padding: 0; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; }
    .header { text-align: center; padding: 30px 20px; border-bottom: 3px solid #f08ba8; }
    .logo { width: 120px; height: auto; border-radius: 50%; }
    .content { padding: 40px 30px; color: #333333; line-height: 1.6; font-size: 16px; }
    h1, h2, h3 { color: #1a1a1a; margin-top: 0; }
    a { color: #f08ba8; text-decoration: none; font-weight: bold; }
    .footer { background-color: #f1f1f1; padding: 20px; text-align: center; font-size: 12px; color: #888888; }
    .button { display: inline-block; background-color: #f08ba8; color: #ffffff !important; padding: 12px 24px; border-radius: 6px; margin-top: 20px; }
  </style>
</head>
<body>
  <div style="padding: 20px 0;">
    <div class="container">
      <div class="header">
        <img src="{{.LogoURL}}" alt="{{.Brand}}" class="logo">
      </div>
      <div class="content">
        {{template "content" .}}
      </div>
      <div class="footer">
        <p>&copy; {{.Year}} {{.Brand}}. All rights reserved.</p>
        <p><a href="{{.SiteURL}}">Visit Website</a></p>
      </div>
    </div>
  </div>
</body>
</html>`

const confirmationHTML = `{{define "content"}}
<h1>Order Confirmed!</h1>
<p>Hi {{.Order.Customer.Name}},</p>
<p>Thank you for your order. Your order reference is <strong>{{.Order.Reference}}</strong>.</p>
<p>We will review your order and send you payment details shortly.</p>
<h3>Order Summary:</h3>
<ul>
{{- range .Order.Items}}
  <li>{{.Name}} (x{{.Quantity}}) - ${{money .Subtotal}}</li>
{{- end}}
</ul>
<p><strong>Total: ${{money .Order.Payment.TotalAmount}}</strong></p>
<a href="{{.Link}}" class="button">Track Your Order</a>
<p>Best regards,<br>{{.Brand}} Team</p>
{{end}}`

const adminAlertHTML = `{{define "content"}}
<h2>New Order Received</h2>
<p><strong>Reference:</strong> {{.Order.Reference}}</p>
<p><strong>Customer:</strong> {{.Order.Customer.Name}} ({{.Order.Customer.Email}})</p>
{{- with .Order.Customer.Phone}}
<p><strong>Phone:</strong> {{.}}</p>
{{- end}}
<p><strong>Items:</strong> {{len .Order.Items}}</p>
<p><strong>Payment method:</strong> {{.Order.Payment.PreferredMethod}}{{with .Order.Payment.CustomMethod}} ({{.}}){{end}}</p>
<p><strong>Total:</strong> ${{money .Order.Payment.TotalAmount}}</p>
<a href="{{.Link}}" class="button">View Order in Admin</a>
{{end}}`

const replyHTML = `{{define "content"}}
<div style="font-family: sans-serif; color: #333;">
  {{.Body}}
  <br><br>
  <hr>
  <p style="font-size: 12px; color: #888;">{{.Brand}} &middot; Order {{.Order.Reference}}</p>
</div>
{{end}}`
