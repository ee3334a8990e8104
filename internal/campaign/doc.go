// Package campaign implements the mail-merge run: per-row eligibility,
// template personalization and reconciliation of the "sent" state.
//
// # Flow
//
// A Runner loads the recipients sheet, opens one mail session and walks the
// rows in order. Each row ends in exactly one Status:
//
//	already sent (status "sent"/"response")  -> StatusSkippedAlreadySent
//	no template file                          -> StatusSkippedNoTemplate
//	template missing or malformed             -> StatusSkippedLoadFailed
//	placeholder cannot be bound               -> StatusSkippedBindFailed
//	transport rejected the message            -> StatusFailed
//	transport accepted the message            -> StatusSent
//
// Only StatusSent changes persisted state. Sent rows are collected as
// recipient.Mutation values and applied to the loaded snapshot once, after the
// session is closed. A run that sends nothing never rewrites the sheet.
//
// After every sent message the runner pauses for Config.Throttle to stay
// below provider rate limits.
//
// # Personalization
//
// Templates reference placeholders as {name}:
//
//	name, first_name, company, position, value_prop_sentence,
//	your_name, your_phone_number, your_email, your_city_and_state,
//	dynamic_image_tag
//
// dynamic_image_tag is non-empty only for Config.ImageTemplate when a picture
// named "{company}_{name}.{png,jpg,jpeg,gif}" exists in Config.ImageDir. The
// tag references InlineImageContentID, which is also the content-id of the
// inline attachment passed to the transport.
package campaign
