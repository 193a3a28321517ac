/*
Package rabbitmq forwards mediator notifications to RabbitMQ.
It publishes JSON messages to a topic exchange, includes an auto-reconnect
publisher, and supports optional header propagation via a mediator.HeaderPropagator.
*/
package rabbitmq
