package service

import (
	"fmt"
	"time"

	"github.com/tictac1213/JobNotification/internal/model"
)

// Deadlines are always rendered in IST for students.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// formatDeadlineIST renders a deadline like "02/01/2006 at 03:04 PM (IST)".
func formatDeadlineIST(t time.Time) string {
	ist := t.In(istZone)
	return ist.Format("02/01/2006 at 03:04 PM") + " (IST)"
}

const mailFooter = `<p style="color: #64748b; font-size: 14px;">Best regards,<br>College Job Notification Platform</p>`

func newTaskEmail(userName string, task *model.Task, companyName, frontendURL string) (subject, body string) {
	subject = fmt.Sprintf("New Task Available: %s", task.Title)
	body = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #2563eb;">New Task Available!</h2>
<p>Hello <strong>%s</strong>,</p>
<p>A new task has been added for <strong>%s</strong> that matches your eligibility criteria.</p>
<div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3 style="color: #1e40af; margin-top: 0;">Task Details:</h3>
<p><strong>Title:</strong> %s</p>
<p><strong>Description:</strong> %s</p>
<p><strong>Deadline:</strong> %s</p>
<p><strong>Company:</strong> %s</p>
</div>
<p>Please log in to your dashboard to view the complete task details and submit your work before the deadline.</p>
<div style="text-align: center; margin: 30px 0;">
<a href="%s/student" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Task</a>
</div>
%s</div>`,
		userName, companyName, task.Title, task.Description,
		formatDeadlineIST(task.Deadline), companyName, frontendURL, mailFooter)
	return subject, body
}

func taskReminderEmail(userName string, task *model.Task, companyName, threshold, frontendURL string) (subject, body string) {
	timeText := "1 day"
	urgencyColor := "#ea580c"
	urgencyText := "Reminder"
	finalWarning := ""
	if threshold == model.ReminderSixHour {
		timeText = "6 hours"
		urgencyColor = "#dc2626"
		urgencyText = "URGENT"
		finalWarning = `<div style="background-color: #fef3c7; padding: 15px; border-radius: 6px; margin: 20px 0;">
<p style="margin: 0; color: #92400e;"><strong>Final Reminder:</strong> This is your last chance to submit before the deadline!</p>
</div>`
	}

	subject = fmt.Sprintf("%s: Task Deadline Approaching - %s", urgencyText, task.Title)
	body = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: %s;">Task Deadline Reminder</h2>
<p>Hello <strong>%s</strong>,</p>
<p>This is a reminder that you have <strong>%s</strong> remaining to submit your task for <strong>%s</strong>.</p>
<div style="background-color: #fef2f2; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid %s;">
<h3 style="color: %s; margin-top: 0;">Task Details:</h3>
<p><strong>Title:</strong> %s</p>
<p><strong>Deadline:</strong> %s</p>
<p><strong>Company:</strong> %s</p>
<p><strong>Time Remaining:</strong> %s</p>
</div>
%s
<p>Please log in to your dashboard immediately to submit your work.</p>
<div style="text-align: center; margin: 30px 0;">
<a href="%s/student" style="background-color: %s; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Submit Task Now</a>
</div>
%s</div>`,
		urgencyColor, userName, timeText, companyName, urgencyColor, urgencyColor,
		task.Title, formatDeadlineIST(task.Deadline), companyName, timeText,
		finalWarning, frontendURL, urgencyColor, mailFooter)
	return subject, body
}

func newCompanyEmail(userName string, company *model.Company, frontendURL string) (subject, body string) {
	subject = fmt.Sprintf("New Job Opportunity: %s", company.Name)
	body = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #28a745;">New Job Opportunity!</h2>
<p>Hello <strong>%s</strong>,</p>
<p>A new job opportunity has been posted that matches your profile:</p>
<div style="background-color: #f0f9ff; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3 style="color: #1e40af; margin-top: 0;">Company Details:</h3>
<p><strong>Company:</strong> %s</p>
<p><strong>Role:</strong> %s</p>
<p><strong>Compensation:</strong> %s</p>
</div>
<p>Log in to your dashboard to view the complete details and apply!</p>
<div style="text-align: center; margin: 30px 0;">
<a href="%s/student" style="background-color: #28a745; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Opportunity</a>
</div>
%s</div>`,
		userName, company.Name, company.Role, company.Compensation, frontendURL, mailFooter)
	return subject, body
}

func companyUpdateEmail(userName string, company *model.Company, frontendURL string) (subject, body string) {
	subject = fmt.Sprintf("Update: %s Job Opportunity Details Changed", company.Name)
	body = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<p>Hello <strong>%s</strong>,</p>
<p>The details for <strong>%s</strong> have been updated. Please review the latest information and eligibility.</p>
<div style="background-color: #f0f9ff; padding: 20px; border-radius: 8px; margin: 20px 0;">
<p><strong>Company:</strong> %s</p>
<p><strong>Role:</strong> %s</p>
<p><strong>Compensation:</strong> %s</p>
</div>
<div style="text-align: center; margin: 30px 0;">
<a href="%s/student" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Review Changes</a>
</div>
%s</div>`,
		userName, company.Name, company.Name, company.Role, company.Compensation, frontendURL, mailFooter)
	return subject, body
}

func approvalEmail(userName, frontendURL string) (subject, body string) {
	subject = "Account Approved - Welcome to Job Notifications!"
	body = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #28a745;">Account Approved!</h2>
<p>Hello <strong>%s</strong>,</p>
<p>Great news! Your account has been approved by the admin.</p>
<div style="background-color: #f0fdf4; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3 style="color: #166534; margin-top: 0;">You can now access:</h3>
<ul style="color: #166534; margin: 10px 0;">
<li>View available job opportunities</li>
<li>Track application deadlines</li>
<li>Receive task reminders</li>
<li>Update your profile</li>
</ul>
</div>
<div style="text-align: center; margin: 30px 0;">
<a href="%s/login" style="background-color: #28a745; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Login Now</a>
</div>
%s</div>`,
		userName, frontendURL, mailFooter)
	return subject, body
}
