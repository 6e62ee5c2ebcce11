// Package automationservice turns record activity into outbound messages.
//
// Org admins author message templates per partition and trigger. When a
// record commits, the trigger processor renders every enabled template
// against the record's data and queues one delivery per template. A separate
// worker drains the queue through the NHN Cloud AlimTalk and Email APIs and
// records the sent or failed outcome per delivery.
package automationservice
